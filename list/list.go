// Package list implements a doubly linked list whose nodes are allocated
// through a memory.Allocator.
package list

import (
	"iter"
	"unsafe"

	"github.com/lucasgdosr/stl/iterator"
	"github.com/lucasgdosr/stl/memory"
)

type node[T any] struct {
	prev, next *node[T]
	val        T
}

// List is a doubly linked list with a sentinel node. Insertion and removal
// anywhere are O(1) and never invalidate iterators to other elements.
//
// To create a List, use MakeList() or MakeListWithAllocator(a). Nodes are
// drawn from a rebinding of the element allocator, so they are accounted
// against the same Resource as the elements.
type List[T any] struct {
	alloc     memory.Allocator[T]
	nodeAlloc memory.Allocator[node[T]]
	root      *node[T]
	len       int
}

// MakeList returns an empty List using a standard allocator on its own heap.
func MakeList[T any]() *List[T] {
	return MakeListWithAllocator[T](nil)
}

// MakeListWithAllocator returns an empty List drawing from a. A nil a gets a
// standard allocator on its own heap.
func MakeListWithAllocator[T any](a memory.Allocator[T]) *List[T] {
	if a == nil {
		a = memory.New[T](nil)
	}
	return &List[T]{alloc: a, nodeAlloc: memory.Rebind[node[T]](a), root: newRoot[T]()}
}

func newRoot[T any]() *node[T] {
	r := &node[T]{}
	r.prev, r.next = r, r
	return r
}

// Len returns the number of elements in O(1).
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.len
}

// Empty returns whether the List has no elements.
func (l *List[T]) Empty() bool { return l.len == 0 }

// PeekFront returns the first element, or false if the List is empty.
func (l *List[T]) PeekFront() (t T, ok bool) {
	if l.len == 0 {
		return
	}
	return l.root.next.val, true
}

// PeekBack returns the last element, or false if the List is empty.
func (l *List[T]) PeekBack() (t T, ok bool) {
	if l.len == 0 {
		return
	}
	return l.root.prev.val, true
}

// PushFront inserts a copy of t at the front.
func (l *List[T]) PushFront(t T) error {
	_, err := l.Insert(l.Begin(), t)
	return err
}

// PushBack inserts a copy of t at the back.
func (l *List[T]) PushBack(t T) error {
	_, err := l.Insert(l.End(), t)
	return err
}

// PopFront unlinks the first element and returns it. The element is moved out
// to the caller rather than destroyed.
func (l *List[T]) PopFront() (t T, ok bool) {
	if l.len == 0 {
		return
	}
	return l.take(l.root.next), true
}

// PopBack unlinks the last element and returns it. The element is moved out
// to the caller rather than destroyed.
func (l *List[T]) PopBack() (t T, ok bool) {
	if l.len == 0 {
		return
	}
	return l.take(l.root.prev), true
}

// Insert inserts a copy of t before pos and returns an iterator to it. If the
// node cannot be allocated or the element cannot be constructed, the List is
// unchanged.
func (l *List[T]) Insert(pos Iterator[T], t T) (Iterator[T], error) {
	return l.insert(pos, func(p *T) error { return l.alloc.Construct(p, t) })
}

// Emplace inserts an element built in place by init before pos.
func (l *List[T]) Emplace(pos Iterator[T], init func(*T) error) (Iterator[T], error) {
	return l.insert(pos, func(p *T) error { return memory.Emplace(p, init) })
}

func (l *List[T]) insert(pos Iterator[T], construct func(*T) error) (Iterator[T], error) {
	block, err := l.nodeAlloc.Allocate(1)
	if err != nil {
		return Iterator[T]{}, err
	}
	n := &block[0]
	if err := construct(&n.val); err != nil {
		l.nodeAlloc.Deallocate(block)
		return Iterator[T]{}, err
	}
	link(pos.n, n)
	l.len++
	return Iterator[T]{l, n}, nil
}

// Erase destroys the element at pos and returns an iterator to the element
// after it. It panics if pos is End.
func (l *List[T]) Erase(pos Iterator[T]) Iterator[T] {
	if pos.n == l.root {
		panic("list: erase of end iterator")
	}
	next := pos.n.next
	unlink(pos.n)
	l.alloc.Destroy(&pos.n.val)
	l.free(pos.n)
	l.len--
	return Iterator[T]{l, next}
}

// RemoveFunc erases every element satisfying f and returns how many were
// removed.
func (l *List[T]) RemoveFunc(f func(T) bool) int {
	removed := 0
	for it := l.Begin(); !it.Equal(l.End()); {
		if f(it.n.val) {
			it = l.Erase(it)
			removed++
			continue
		}
		it = it.Next()
	}
	return removed
}

// Clear destroys every element and frees every node.
func (l *List[T]) Clear() {
	for n := l.root.next; n != l.root; {
		next := n.next
		l.alloc.Destroy(&n.val)
		l.free(n)
		n = next
	}
	l.root.prev, l.root.next = l.root, l.root
	l.len = 0
}

// Splice moves every element of other before pos in O(1). The Lists must
// draw from the same Resource. other is left empty.
func (l *List[T]) Splice(pos Iterator[T], other *List[T]) {
	if other == l || other.len == 0 {
		return
	}
	transfer(pos.n, other.root.next, other.root)
	l.len += other.len
	other.len = 0
}

// Reverse reverses the order of the elements in place.
func (l *List[T]) Reverse() {
	n := l.root
	for {
		n.prev, n.next = n.next, n.prev
		n = n.prev
		if n == l.root {
			return
		}
	}
}

// Merge moves the elements of other into l. Both must be sorted by less; the
// result is sorted and stable, with elements of l before equal elements of
// other. other is left empty.
func (l *List[T]) Merge(other *List[T], less func(a, b T) bool) {
	if other == l {
		return
	}
	first1, first2 := l.root.next, other.root.next
	for first1 != l.root && first2 != other.root {
		if less(first2.val, first1.val) {
			next := first2.next
			transfer(first1, first2, next)
			first2 = next
		} else {
			first1 = first1.next
		}
	}
	if first2 != other.root {
		transfer(l.root, first2, other.root)
	}
	l.len += other.len
	other.len = 0
}

// Sort sorts the List by less with a stable bottom-up merge sort that
// relinks nodes and never copies elements.
func (l *List[T]) Sort(less func(a, b T) bool) {
	if l.len < 2 {
		return
	}
	carry := l.chain()
	var counter []*List[T]
	for l.len > 0 {
		first := l.root.next
		transfer(carry.root.next, first, first.next)
		carry.len, l.len = carry.len+1, l.len-1

		i := 0
		for ; i < len(counter) && counter[i].len > 0; i++ {
			counter[i].Merge(carry, less)
			carry, counter[i] = counter[i], carry
		}
		if i == len(counter) {
			counter = append(counter, l.chain())
		}
		carry, counter[i] = counter[i], carry
	}
	for i := 1; i < len(counter); i++ {
		counter[i].Merge(counter[i-1], less)
	}
	l.Splice(l.End(), counter[len(counter)-1])
}

// chain returns an empty List sharing l's allocators, used as a holding
// area for relinked nodes.
func (l *List[T]) chain() *List[T] {
	return &List[T]{alloc: l.alloc, nodeAlloc: l.nodeAlloc, root: newRoot[T]()}
}

// Equal returns whether both Lists hold equal elements in the same order.
func Equal[T comparable](l1, l2 *List[T]) bool {
	return l1.EqualFunc(l2, func(a, b T) bool { return a == b })
}

// EqualFunc is Equal with a caller-supplied comparison.
func (l *List[T]) EqualFunc(o *List[T], f func(T, T) bool) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.len != o.len {
		return false
	}
	for a, b := l.root.next, o.root.next; a != l.root; a, b = a.next, b.next {
		if !f(a.val, b.val) {
			return false
		}
	}
	return true
}

// All returns an iterator over index-value pairs in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for n := l.root.next; n != l.root; n = n.next {
			if !yield(i, n.val) {
				return
			}
			i++
		}
	}
}

// Iter returns an iterator over values in order.
func (l *List[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.root.next; n != l.root; n = n.next {
			if !yield(n.val) {
				return
			}
		}
	}
}

// Backward returns an iterator over values from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.root.prev; n != l.root; n = n.prev {
			if !yield(n.val) {
				return
			}
		}
	}
}

// Iterator is a bidirectional position in a List. It stays valid until the
// element it refers to is erased.
type Iterator[T any] struct {
	l *List[T]
	n *node[T]
}

// Begin returns an Iterator to the first element.
func (l *List[T]) Begin() Iterator[T] { return Iterator[T]{l, l.root.next} }

// End returns an Iterator past the last element.
func (l *List[T]) End() Iterator[T] { return Iterator[T]{l, l.root} }

func (it Iterator[T]) Category() iterator.Category { return iterator.Bidirectional }

func (it Iterator[T]) Next() Iterator[T] { return Iterator[T]{it.l, it.n.next} }

func (it Iterator[T]) Prev() Iterator[T] { return Iterator[T]{it.l, it.n.prev} }

func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.n == o.n }

// Value returns the element the iterator refers to.
func (it Iterator[T]) Value() T { return it.n.val }

// Ptr returns a pointer to the element the iterator refers to.
func (it Iterator[T]) Ptr() *T { return &it.n.val }

// Set assigns t to the element without running lifecycle hooks.
func (it Iterator[T]) Set(t T) { it.n.val = t }

// take unlinks n, moves its value out and frees the node.
func (l *List[T]) take(n *node[T]) T {
	unlink(n)
	t := n.val
	var zero T
	n.val = zero
	l.free(n)
	l.len--
	return t
}

func (l *List[T]) free(n *node[T]) {
	l.nodeAlloc.Deallocate(unsafe.Slice(n, 1))
}

// link inserts n before pos.
func link[T any](pos, n *node[T]) {
	n.prev, n.next = pos.prev, pos
	pos.prev.next = n
	pos.prev = n
}

func unlink[T any](n *node[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

// transfer moves [first, last) before pos. pos must not be inside the range.
func transfer[T any](pos, first, last *node[T]) {
	if pos == last || first == last {
		return
	}
	lastIn := last.prev
	// detach
	first.prev.next = last
	last.prev = first.prev
	// attach before pos
	lastIn.next = pos
	first.prev = pos.prev
	pos.prev.next = first
	pos.prev = lastIn
}
