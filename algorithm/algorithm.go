// Package algorithm implements the range algorithms the containers are built
// on. Ranges are half-open iterator pairs [first, last).
//
// The element type comes first in every type parameter list, so a call
// names it and lets the iterator type be inferred:
//
//	algorithm.Copy[int](v.Begin(), v.End(), d.Begin())
package algorithm

import (
	"cmp"

	"github.com/lucasgdosr/stl/iterator"
)

// Writer is an iterator whose current element can be assigned.
type Writer[T, I any] interface {
	iterator.Iterator[I]
	Set(T)
}

// ReadWriter can both read and assign its current element.
type ReadWriter[T, I any] interface {
	iterator.Iterator[I]
	Value() T
	Set(T)
}

// BidirectionalWriter is a writable iterator that can step backwards.
type BidirectionalWriter[T, I any] interface {
	iterator.BidirectionalIterator[I]
	Set(T)
}

// Copy assigns [first, last) to the range starting at out, front to back,
// and returns the end of the written range. The destination may overlap the
// source only if out precedes first.
func Copy[T any, I iterator.Reader[T, I], O Writer[T, O]](first, last I, out O) O {
	for ; !first.Equal(last); first = first.Next() {
		out.Set(first.Value())
		out = out.Next()
	}
	return out
}

// CopyBackward assigns [first, last) to the range ending at outLast, back to
// front, and returns the beginning of the written range. The destination may
// overlap the source only if outLast follows last.
func CopyBackward[T any, I iterator.BidirectionalReader[T, I], O BidirectionalWriter[T, O]](first, last I, outLast O) O {
	for !last.Equal(first) {
		last = last.Prev()
		outLast = outLast.Prev()
		outLast.Set(last.Value())
	}
	return outLast
}

// Fill assigns v to every element of [first, last).
func Fill[T any, O Writer[T, O]](first, last O, v T) {
	for ; !first.Equal(last); first = first.Next() {
		first.Set(v)
	}
}

// FillN assigns v to n elements starting at first and returns the end of the
// filled range.
func FillN[T any, O Writer[T, O]](first O, n int, v T) O {
	for ; n > 0; n-- {
		first.Set(v)
		first = first.Next()
	}
	return first
}

// IterSwap exchanges the elements a and b refer to.
func IterSwap[T any, I ReadWriter[T, I], J ReadWriter[T, J]](a I, b J) {
	va, vb := a.Value(), b.Value()
	a.Set(vb)
	b.Set(va)
}

// Reverse reverses [first, last) in place.
func Reverse[T any, I interface {
	iterator.BidirectionalIterator[I]
	Value() T
	Set(T)
}](first, last I) {
	for !first.Equal(last) {
		last = last.Prev()
		if first.Equal(last) {
			return
		}
		IterSwap[T](first, last)
		first = first.Next()
	}
}

// Equal reports whether [first1, last1) and the range of the same length
// starting at first2 hold equal elements.
func Equal[T comparable, I iterator.Reader[T, I], J iterator.Reader[T, J]](first1, last1 I, first2 J) bool {
	return EqualFunc(first1, last1, first2, func(a, b T) bool { return a == b })
}

// EqualFunc is Equal with a caller-supplied comparison.
func EqualFunc[T, U any, I iterator.Reader[T, I], J iterator.Reader[U, J]](first1, last1 I, first2 J, eq func(T, U) bool) bool {
	for ; !first1.Equal(last1); first1, first2 = first1.Next(), first2.Next() {
		if !eq(first1.Value(), first2.Value()) {
			return false
		}
	}
	return true
}

// Count returns the number of elements of [first, last) equal to v.
func Count[T comparable, I iterator.Reader[T, I]](first, last I, v T) int {
	n := 0
	for ; !first.Equal(last); first = first.Next() {
		if first.Value() == v {
			n++
		}
	}
	return n
}

// MinElement returns an iterator to the first smallest element of
// [first, last), or last if the range is empty.
func MinElement[T cmp.Ordered, I iterator.Reader[T, I]](first, last I) I {
	return extreme(first, last, func(a, b T) bool { return a < b })
}

// MaxElement returns an iterator to the first largest element of
// [first, last), or last if the range is empty.
func MaxElement[T cmp.Ordered, I iterator.Reader[T, I]](first, last I) I {
	return extreme(first, last, func(a, b T) bool { return a > b })
}

func extreme[T any, I iterator.Reader[T, I]](first, last I, better func(a, b T) bool) I {
	if first.Equal(last) {
		return last
	}
	best := first
	bv := first.Value()
	for it := first.Next(); !it.Equal(last); it = it.Next() {
		if v := it.Value(); better(v, bv) {
			best, bv = it, v
		}
	}
	return best
}
