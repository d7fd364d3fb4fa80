// Package iterator defines iterator categories and the generic operations
// that dispatch on them.
//
// Iterators in this module are small values: Next, Prev and Add return a new
// iterator rather than mutating the receiver. An iterator advertises what it
// can do through Category; Distance and Advance use the constant-time
// methods of random-access iterators and fall back to stepping otherwise.
package iterator

import (
	"fmt"
	"iter"

	"golang.org/x/exp/constraints"
)

// Category describes the movement an iterator supports. Each category
// includes the capabilities of the ones before it.
type Category int

const (
	Input Category = iota
	Forward
	Bidirectional
	RandomAccess
)

var categoryNames = map[Category]string{
	Input:         "input",
	Forward:       "forward",
	Bidirectional: "bidirectional",
	RandomAccess:  "random-access",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Iterator is the protocol every iterator implements.
type Iterator[I any] interface {
	Category() Category
	Next() I
	Equal(I) bool
}

// BidirectionalIterator can also step backwards.
type BidirectionalIterator[I any] interface {
	Iterator[I]
	Prev() I
}

// RandomAccessIterator can jump by n and measure distance in O(1).
type RandomAccessIterator[I any] interface {
	BidirectionalIterator[I]
	// Add returns the iterator n positions away; n may be negative.
	Add(n int) I
	// Diff returns the signed distance from other to the receiver.
	Diff(other I) int
}

// Reader is an iterator whose current element can be read.
type Reader[T, I any] interface {
	Iterator[I]
	Value() T
}

// Distance returns the number of Next steps from first to last. It is O(1)
// for random-access iterators and O(n) otherwise.
func Distance[I Iterator[I]](first, last I) int {
	if first.Category() >= RandomAccess {
		if ra, ok := any(last).(interface{ Diff(I) int }); ok {
			return ra.Diff(first)
		}
	}
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		n++
	}
	return n
}

// Advance returns it moved n positions. Random-access iterators jump in
// O(1); bidirectional iterators step in either direction; other iterators
// panic on negative n.
func Advance[I Iterator[I], N constraints.Integer](it I, n N) I {
	c := it.Category()
	if c >= RandomAccess {
		if ra, ok := any(it).(interface{ Add(int) I }); ok {
			return ra.Add(int(n))
		}
	}
	for ; n > 0; n-- {
		it = it.Next()
	}
	if n < 0 {
		bi, ok := any(it).(interface{ Prev() I })
		if c < Bidirectional || !ok {
			panic(fmt.Sprintf("iterator: cannot move a %s iterator backwards", c))
		}
		for ; n < 0; n++ {
			it = bi.Prev()
			bi = any(it).(interface{ Prev() I })
		}
	}
	return it
}

// Values yields the elements of [first, last).
func Values[T any, I Reader[T, I]](first, last I) iter.Seq[T] {
	return func(yield func(T) bool) {
		for it := first; !it.Equal(last); it = it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Collect copies [first, last) into a new slice. The slice is sized up
// front when the distance is cheap to compute.
func Collect[T any, I Reader[T, I]](first, last I) []T {
	var out []T
	if first.Category() >= RandomAccess {
		out = make([]T, 0, Distance(first, last))
	}
	for v := range Values[T](first, last) {
		out = append(out, v)
	}
	return out
}
