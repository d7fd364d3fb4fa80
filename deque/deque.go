// Package deque implements a double-ended queue stored as a map of
// fixed-size buffers.
package deque

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/lucasgdosr/stl/algorithm"
	"github.com/lucasgdosr/stl/memory"
)

// Deque is a double-ended queue that can be used for either LIFO or FIFO
// ordering, or something in between, with O(1) indexing and amortized O(1)
// pushes and pops at both ends.
//
// To create a Deque instance, you must use one of the available constructors,
// MakeDeque(), MakeDequeWithAllocator(a), MakeDequeN(n), MakeDequeFill(n, t),
// CopySliceToDeque(s) or CollectDeque(seq). nil Deques panic when called,
// except for Len. Creating a Deque in the following way is wrong:
//
//	var deque Deque[int] // wrong
//
// Elements live in buffers of BufferSize() elements each. A map of buffer
// slots, kept with spare slots on both sides, tracks the buffers in order.
// Growing at either end allocates one buffer at a time, and the map itself
// grows or recenters only when it runs out of slots on the side being
// extended. Elements never move when the map changes.
type Deque[T any] struct {
	alloc    memory.Allocator[T]
	mapAlloc memory.Allocator[[]T]
	m        *blockMap[T]
	// start is the first element and finish one past the last. finish always
	// refers to a slot in an allocated buffer.
	start, finish Iterator[T]
}

// constructor builds elements [off, off+len(dst)) of an inserted sequence
// into dst. It must be all-or-nothing.
type constructor[T any] func(dst []T, off int) error

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// MakeDeque returns an empty Deque using a standard allocator on its own
// heap.
func MakeDeque[T any]() *Deque[T] {
	d, err := MakeDequeWithAllocator[T](nil)
	if err != nil {
		// An unbounded heap cannot refuse the initial map.
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "deque: allocating initial map"))
	}
	return d
}

// MakeDequeWithAllocator returns an empty Deque drawing buffers from a and
// its map from a rebinding of a. A nil a gets a standard allocator on its own
// heap. It returns an error if the initial map cannot be allocated.
func MakeDequeWithAllocator[T any](a memory.Allocator[T]) (*Deque[T], error) {
	d := newDeque(a)
	if err := d.initMap(0); err != nil {
		return nil, err
	}
	return d, nil
}

// MakeDequeN returns a Deque of n default-constructed elements.
func MakeDequeN[T any](n int) (*Deque[T], error) {
	d := newDeque[T](nil)
	err := d.initialize(n, func(dst []T, _ int) error {
		return memory.UninitializedDefault(d.alloc, dst)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// MakeDequeFill returns a Deque of n copies of t.
func MakeDequeFill[T any](n int, t T) (*Deque[T], error) {
	d := newDeque[T](nil)
	err := d.initialize(n, func(dst []T, _ int) error {
		return memory.UninitializedFill(d.alloc, dst, t)
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CopySliceToDeque returns a Deque holding copies of the elements of s. The
// slice's capacity is irrelevant, and memory is not shared.
func CopySliceToDeque[T any](s []T) (*Deque[T], error) {
	d := newDeque[T](nil)
	err := d.initialize(len(s), func(dst []T, off int) error {
		_, err := memory.UninitializedCopy(d.alloc, dst, s[off:off+len(dst)])
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CollectDeque returns a Deque holding copies of the values of seq.
func CollectDeque[T any](seq iter.Seq[T]) (*Deque[T], error) {
	d := MakeDeque[T]()
	for t := range seq {
		if err := d.PushBack(t); err != nil {
			d.Release()
			return nil, err
		}
	}
	return d, nil
}

func newDeque[T any](a memory.Allocator[T]) *Deque[T] {
	if a == nil {
		a = memory.New[T](nil)
	}
	return &Deque[T]{alloc: a, mapAlloc: memory.Rebind[[]T](a)}
}

// initialize sets up the map for n elements and constructs them in place.
func (d *Deque[T]) initialize(n int, construct constructor[T]) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCount, "make deque of %d elements", n)
	}
	if n > d.alloc.MaxSize() {
		return errors.Wrapf(memory.ErrOutOfMemory, "deque: cannot hold %d elements", n)
	}
	if err := d.initMap(n); err != nil {
		return err
	}
	if err := d.constructSegments(d.start, d.finish, construct); err != nil {
		d.freeStorage()
		return err
	}
	return nil
}

/*****************************************************************************
 * DEQUE API
 *****************************************************************************/

// Len returns the number of elements in the Deque or 0 if nil.
func (d *Deque[T]) Len() int {
	if d == nil || d.m == nil {
		return 0
	}
	return d.finish.Diff(d.start)
}

// Empty returns whether the Deque is empty.
func (d *Deque[T]) Empty() bool { return d.Len() == 0 }

// Allocator returns the allocator the Deque draws its buffers from.
func (d *Deque[T]) Allocator() memory.Allocator[T] { return d.alloc }

// PushBack puts a copy of t at the back of the Deque. Use PushBack and
// PopFront for FIFO ordering, or PushBack and PopBack for LIFO ordering.
//
// It is O(1) while the last buffer has room. Otherwise it links one new
// buffer, growing the map first if it has no spare slot at the back. If the
// construction fails, the new buffer is released and the Deque is unchanged.
func (d *Deque[T]) PushBack(t T) error {
	return d.pushBack(func(p *T) error { return d.alloc.Construct(p, t) })
}

// EmplaceBack puts an element built in place by init at the back of the
// Deque.
func (d *Deque[T]) EmplaceBack(init func(*T) error) error {
	return d.pushBack(func(p *T) error { return memory.Emplace(p, init) })
}

func (d *Deque[T]) pushBack(construct func(*T) error) error {
	if err := d.ensureMap(); err != nil {
		return err
	}
	if d.finish.cur != d.m.bufSize-1 {
		if err := construct(d.finish.Ptr()); err != nil {
			return err
		}
		d.finish.cur++
		return nil
	}
	if err := d.reserveMapAtBack(1); err != nil {
		return err
	}
	buf, err := d.alloc.Allocate(d.m.bufSize)
	if err != nil {
		return err
	}
	if err := construct(d.finish.Ptr()); err != nil {
		d.alloc.Deallocate(buf)
		return err
	}
	d.m.nodes[d.finish.node+1] = buf
	d.finish.setNode(d.finish.node + 1)
	d.finish.cur = 0
	return nil
}

// PushFront puts a copy of t at the front of the Deque.
//
// It is O(1) while the first buffer has room. Otherwise it links one new
// buffer, growing the map first if it has no spare slot at the front. If the
// construction fails, the new buffer is released and the Deque is unchanged.
func (d *Deque[T]) PushFront(t T) error {
	return d.pushFront(func(p *T) error { return d.alloc.Construct(p, t) })
}

// EmplaceFront puts an element built in place by init at the front of the
// Deque.
func (d *Deque[T]) EmplaceFront(init func(*T) error) error {
	return d.pushFront(func(p *T) error { return memory.Emplace(p, init) })
}

func (d *Deque[T]) pushFront(construct func(*T) error) error {
	if err := d.ensureMap(); err != nil {
		return err
	}
	if d.start.cur != 0 {
		if err := construct(&d.start.buf[d.start.cur-1]); err != nil {
			return err
		}
		d.start.cur--
		return nil
	}
	if err := d.reserveMapAtFront(1); err != nil {
		return err
	}
	buf, err := d.alloc.Allocate(d.m.bufSize)
	if err != nil {
		return err
	}
	last := d.m.bufSize - 1
	if err := construct(&buf[last]); err != nil {
		d.alloc.Deallocate(buf)
		return err
	}
	d.m.nodes[d.start.node-1] = buf
	d.start.setNode(d.start.node - 1)
	d.start.cur = last
	return nil
}

// PeekBack returns the last element in the Deque. If the Deque is empty, it
// returns false.
func (d *Deque[T]) PeekBack() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return d.finish.Prev().Value(), true
}

// PeekFront returns the first element in the Deque. If the Deque is empty, it
// returns false.
func (d *Deque[T]) PeekFront() (t T, ok bool) {
	if d.Empty() {
		return
	}
	return d.start.Value(), true
}

// PopBack removes the last element in the Deque and returns it. If it's
// empty, returns false. The element is moved out to the caller rather than
// destroyed, and its slot is zeroed. When the last buffer becomes empty it is
// released.
func (d *Deque[T]) PopBack() (t T, ok bool) {
	if d.Empty() {
		return
	}
	if d.finish.cur == 0 {
		d.alloc.Deallocate(d.finish.buf)
		d.m.nodes[d.finish.node] = nil
		d.finish.setNode(d.finish.node - 1)
		d.finish.cur = d.m.bufSize
	}
	d.finish.cur--
	p := d.finish.Ptr()
	t = *p
	var zero T
	*p = zero
	return t, true
}

// PopFront removes the first element in the Deque and returns it. If it's
// empty, returns false. The element is moved out to the caller rather than
// destroyed, and its slot is zeroed. When the first buffer becomes empty it
// is released.
func (d *Deque[T]) PopFront() (t T, ok bool) {
	if d.Empty() {
		return
	}
	p := d.start.Ptr()
	t = *p
	var zero T
	*p = zero
	if d.start.cur == d.m.bufSize-1 {
		d.alloc.Deallocate(d.start.buf)
		d.m.nodes[d.start.node] = nil
		d.start.setNode(d.start.node + 1)
		d.start.cur = 0
		return t, true
	}
	d.start.cur++
	return t, true
}

// DropFront destroys the n first elements of the Deque. If the Deque has
// fewer than n elements, it drops every element. If n is negative, no element
// is dropped.
func (d *Deque[T]) DropFront(n int) {
	if n <= 0 || d.m == nil {
		return
	}
	pos := d.start.Add(min(n, d.Len()))
	d.destroySpan(d.start, pos)
	d.truncateFront(pos)
}

// DropBack destroys the n last elements of the Deque. If the Deque has fewer
// than n elements, it drops every element. If n is negative, no element is
// dropped.
func (d *Deque[T]) DropBack(n int) {
	if n <= 0 || d.m == nil {
		return
	}
	pos := d.finish.Add(-min(n, d.Len()))
	d.destroySpan(pos, d.finish)
	d.truncateBack(pos)
}

// Insert inserts a copy of t before position i, where i may equal Len. At
// either end it is a push. In the middle the element is constructed first,
// then the shorter side of the Deque shifts by one to make room for it.
//
// Middle insertions, here and in Emplace, InsertN, InsertSlice and
// InsertSeq, build the new elements in a scratch block of n slots drawn from
// the Deque's allocator and freed before returning. Under a bounded Resource
// they therefore need room for n extra elements on top of any new buffers.
func (d *Deque[T]) Insert(i int, t T) error {
	switch i {
	case 0:
		return d.PushFront(t)
	case d.Len():
		return d.PushBack(t)
	}
	return d.insert(i, 1, func(dst []T, _ int) error { return d.alloc.Construct(&dst[0], t) })
}

// Emplace inserts an element built in place by init before position i.
func (d *Deque[T]) Emplace(i int, init func(*T) error) error {
	return d.insert(i, 1, func(dst []T, _ int) error { return memory.Emplace(&dst[0], init) })
}

// InsertN inserts n copies of t before position i.
func (d *Deque[T]) InsertN(i, n int, t T) error {
	return d.insert(i, n, func(dst []T, _ int) error { return memory.UninitializedFill(d.alloc, dst, t) })
}

// InsertSlice inserts copies of the elements of s before position i.
func (d *Deque[T]) InsertSlice(i int, s []T) error {
	return d.insert(i, len(s), func(dst []T, off int) error {
		_, err := memory.UninitializedCopy(d.alloc, dst, s[off:off+len(dst)])
		return err
	})
}

// InsertSeq inserts copies of the values of seq before position i. The values
// are collected first, so seq is consumed exactly once even if the insertion
// then fails.
func (d *Deque[T]) InsertSeq(i int, seq iter.Seq[T]) error {
	if i < 0 || i > d.Len() {
		return outOfRange(i, d.Len())
	}
	staged, err := MakeDequeWithAllocator(d.alloc)
	if err != nil {
		return err
	}
	defer staged.Release()
	for t := range seq {
		if err := staged.PushBack(t); err != nil {
			return err
		}
	}
	return d.insert(i, staged.Len(), func(dst []T, _ int) error {
		for k := range dst {
			dst[k], _ = staged.PopFront()
		}
		return nil
	})
}

// Erase destroys the element at position i and closes the gap by shifting
// the shorter side.
func (d *Deque[T]) Erase(i int) error {
	if i < 0 || i >= d.Len() {
		return outOfRange(i, d.Len())
	}
	return d.EraseRange(i, i+1)
}

// EraseRange destroys the elements in [first, last) and closes the gap by
// shifting whichever side of it holds fewer elements. Buffers left empty at
// that edge are released.
func (d *Deque[T]) EraseRange(first, last int) error {
	length := d.Len()
	if first < 0 || first > last || last > length {
		return errors.Wrapf(ErrOutOfRange, "erase [%d, %d) with length %d", first, last, length)
	}
	n := last - first
	switch {
	case n == 0:
		return nil
	case n == length:
		d.Clear()
		return nil
	}
	firstIt, lastIt := d.start.Add(first), d.start.Add(last)
	d.destroySpan(firstIt, lastIt)
	if first < length-last {
		algorithm.CopyBackward[T](d.start, firstIt, lastIt)
		d.truncateFront(d.start.Add(n))
	} else {
		algorithm.Copy[T](lastIt, d.finish, firstIt)
		d.truncateBack(d.finish.Add(-n))
	}
	return nil
}

// Resize destroys the elements past n, or default-constructs new ones at the
// back until there are n.
func (d *Deque[T]) Resize(n int) error {
	return d.resize(n, func(dst []T, _ int) error { return memory.UninitializedDefault(d.alloc, dst) })
}

// ResizeFill is Resize with new elements copied from t.
func (d *Deque[T]) ResizeFill(n int, t T) error {
	return d.resize(n, func(dst []T, _ int) error { return memory.UninitializedFill(d.alloc, dst, t) })
}

func (d *Deque[T]) resize(n int, construct constructor[T]) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCount, "resize to %d", n)
	}
	length := d.Len()
	if n <= length {
		d.DropBack(length - n)
		return nil
	}
	return d.insert(length, n-length, construct)
}

// Assign replaces the contents with n copies of t. On failure the Deque is
// unchanged.
func (d *Deque[T]) Assign(n int, t T) error {
	fresh := newDeque(d.alloc)
	err := fresh.initialize(n, func(dst []T, _ int) error {
		return memory.UninitializedFill(d.alloc, dst, t)
	})
	if err != nil {
		return err
	}
	d.replace(fresh)
	return nil
}

// AssignSlice replaces the contents with copies of the elements of s. On
// failure the Deque is unchanged.
func (d *Deque[T]) AssignSlice(s []T) error {
	fresh := newDeque(d.alloc)
	err := fresh.initialize(len(s), func(dst []T, off int) error {
		_, err := memory.UninitializedCopy(d.alloc, dst, s[off:off+len(dst)])
		return err
	})
	if err != nil {
		return err
	}
	d.replace(fresh)
	return nil
}

func (d *Deque[T]) replace(fresh *Deque[T]) {
	d.SwapContents(fresh)
	fresh.Release()
}

// Clear destroys every element and releases every buffer but one. The map is
// kept.
func (d *Deque[T]) Clear() {
	if d.m == nil {
		return
	}
	d.destroySpan(d.start, d.finish)
	d.destroyNodes(d.m, d.start.node+1, d.finish.node+1)
	d.finish = d.start
}

// Release destroys every element and returns every buffer and the map to the
// allocator. The Deque stays usable and allocates a new map on the next
// insertion. Until then Begin and End return equal iterators at distance 0
// that must not be dereferenced.
func (d *Deque[T]) Release() {
	if d.m == nil {
		return
	}
	d.Clear()
	d.freeStorage()
}

// Clone returns a Deque with copies of the elements, drawing from the same
// allocator.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	c := newDeque(d.alloc)
	src := d.start
	err := c.initialize(d.Len(), func(dst []T, _ int) error {
		return memory.UninitializedCopyFrom(d.alloc, dst, func() T {
			t := src.Value()
			src = src.Next()
			return t
		})
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SwapContents exchanges the elements and allocators of d and o in O(1).
func (d *Deque[T]) SwapContents(o *Deque[T]) {
	*d, *o = *o, *d
}

// ShrinkToFit reallocates the map to hold the live buffers plus one spare
// slot on each side.
func (d *Deque[T]) ShrinkToFit() error {
	if d.m == nil {
		return nil
	}
	num := d.finish.node - d.start.node + 1
	if len(d.m.nodes) == num+2 {
		return nil
	}
	nodes, err := d.mapAlloc.Allocate(num + 2)
	if err != nil {
		return err
	}
	copy(nodes[1:], d.m.nodes[d.start.node:d.finish.node+1])
	d.mapAlloc.Deallocate(d.m.nodes)
	d.m.nodes = nodes
	d.start.setNode(1)
	d.finish.setNode(num)
	return nil
}

/*****************************************************************************
 * INTROSPECTION
 *****************************************************************************/

// BufferSize returns the number of elements per buffer.
func (d *Deque[T]) BufferSize() int { return bufferSize[T]() }

// MapSize returns the number of slots in the map, or 0 if no map is
// allocated.
func (d *Deque[T]) MapSize() int {
	if d.m == nil {
		return 0
	}
	return len(d.m.nodes)
}

// Nodes returns the number of buffers currently allocated.
func (d *Deque[T]) Nodes() int {
	if d.m == nil {
		return 0
	}
	return d.finish.node - d.start.node + 1
}

/*****************************************************************************
 * SLICE API
 *****************************************************************************/

// slices returns the contiguous pieces holding the elements, in order.
func (d *Deque[T]) slices() [][]T {
	if d == nil || d.Empty() {
		return nil
	}
	return d.spans(d.start, d.finish)
}

// MakeSliceCopy allocates a slice to hold every Deque element and copies them.
// Prefer passing a buffer to CopySlice for memory reuse.
func (d *Deque[T]) MakeSliceCopy() []T {
	s := make([]T, d.Len())
	_ = d.CopySlice(0, s)
	return s
}

// CopySlice has the same semantics as the copy() built-in function. It copies
// elements in the Deque starting at the start index up until the buffer is
// full or the Deque is over, whichever happens first. Elements are copied
// without running lifecycle hooks.
//
// CopySlice returns the number of elements copied. It panics if start is
// negative or greater than Len.
func (d *Deque[T]) CopySlice(start int, buf []T) int {
	length := d.Len()
	if start < 0 || start > length {
		panic(fmt.Sprintf("deque: copy start %d out of bounds with length %d", start, length))
	}
	n := min(len(buf), length-start)
	if n == 0 {
		return 0
	}
	first := d.start.Add(start)
	copied := 0
	for _, seg := range d.spans(first, first.Add(n)) {
		copied += copy(buf[copied:], seg)
	}
	return copied
}

// At returns the i-th element, or an error wrapping ErrOutOfRange.
func (d *Deque[T]) At(i int) (t T, err error) {
	if i < 0 || i >= d.Len() {
		return t, outOfRange(i, d.Len())
	}
	return d.AtUnsafe(i), nil
}

// AtUnsafe indexes into the i-th position in the Deque without checking i.
func (d *Deque[T]) AtUnsafe(i int) T { return *d.locate(i) }

// Ptr returns a pointer to the i-th element. Panics if out of bounds.
func (d *Deque[T]) Ptr(i int) *T {
	d.checkBounds(i)
	return d.locate(i)
}

// Set replaces the i-th element with a copy of t, destroying the old one. It
// returns an error wrapping ErrOutOfRange, or the construction error, in
// which case the element is unchanged.
func (d *Deque[T]) Set(i int, t T) error {
	if i < 0 || i >= d.Len() {
		return outOfRange(i, d.Len())
	}
	var c T
	if err := d.alloc.Construct(&c, t); err != nil {
		return err
	}
	p := d.locate(i)
	d.alloc.Destroy(p)
	*p = c
	return nil
}

// SetUnsafe writes t to the i-th position in the Deque. It runs no lifecycle
// hooks and does not check i.
func (d *Deque[T]) SetUnsafe(i int, t T) { *d.locate(i) = t }

// Swap swaps the elements in the i-th and j-th indexes. Panics if out of
// bounds.
func (d *Deque[T]) Swap(i, j int) {
	d.checkBounds(i)
	d.checkBounds(j)
	d.SwapUnsafe(i, j)
}

// SwapUnsafe swaps the elements in the i-th and j-th indexes without checking
// them.
func (d *Deque[T]) SwapUnsafe(i, j int) {
	a, b := d.locate(i), d.locate(j)
	*a, *b = *b, *a
}

// Contains returns whether the element is in the Deque. This must not be a
// method, otherwise Deque would be constrained to comparable elements. It has
// the same semantics as slices.Contains.
func Contains[T comparable](d *Deque[T], t T) bool {
	return Index(d, t) >= 0
}

// ContainsFunc returns whether an element satisfying f is in the Deque. It has
// the same semantics as slices.ContainsFunc.
func (d *Deque[T]) ContainsFunc(f func(T) bool) bool {
	return d.IndexFunc(f) >= 0
}

// Equal returns whether both Deques have the same length and the same elements
// in the same order. Two nil Deques are equal, but an empty Deque and nil are
// not.
func Equal[T comparable](d1, d2 *Deque[T]) bool {
	return d1.EqualFunc(d2, func(a, b T) bool { return a == b })
}

// EqualFunc returns whether both Deques have the same length and the same
// elements in the same order, comparing elements with f. Two nil Deques are
// equal, but an empty Deque and nil are not.
func (d1 *Deque[T]) EqualFunc(d2 *Deque[T], f func(T, T) bool) bool {
	if d1 == nil || d2 == nil {
		return d1 == d2
	}
	if d1.Len() != d2.Len() {
		return false
	}
	it := d2.start
	for _, seg := range d1.slices() {
		for _, t := range seg {
			if !f(t, it.Value()) {
				return false
			}
			it = it.Next()
		}
	}
	return true
}

// Compare compares the Deques lexicographically, with the same semantics as
// slices.Compare.
func Compare[T cmp.Ordered](d1, d2 *Deque[T]) int {
	n1, n2 := d1.Len(), d2.Len()
	for i := range min(n1, n2) {
		if c := cmp.Compare(d1.AtUnsafe(i), d2.AtUnsafe(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(n1, n2)
}

// Index returns the index of the first occurrence of t in the Deque or -1 if
// absent. It cannot be a method, otherwise Deque would be constrained to
// comparable elements only. Index has the same semantics as slices.Index.
func Index[T comparable](d *Deque[T], t T) int {
	return d.IndexFunc(func(e T) bool { return e == t })
}

// IndexFunc returns the index of the first element that satisfies f in the
// Deque or -1 if none do. IndexFunc has the same semantics as
// slices.IndexFunc.
func (d *Deque[T]) IndexFunc(f func(T) bool) int {
	base := 0
	for _, seg := range d.slices() {
		if i := slices.IndexFunc(seg, f); i != -1 {
			return base + i
		}
		base += len(seg)
	}
	return -1
}

// Max returns the maximum element in the Deque. It has the same semantics as
// slices.Max, so it panics on an empty Deque.
func Max[T cmp.Ordered](d *Deque[T]) T {
	segs := d.slices()
	if len(segs) == 0 {
		panic("deque.Max: empty deque")
	}
	result := slices.Max(segs[0])
	for _, seg := range segs[1:] {
		if len(seg) > 0 {
			result = max(result, slices.Max(seg))
		}
	}
	return result
}

// Min returns the minimum element in the Deque. It has the same semantics as
// slices.Min, so it panics on an empty Deque.
func Min[T cmp.Ordered](d *Deque[T]) T {
	segs := d.slices()
	if len(segs) == 0 {
		panic("deque.Min: empty deque")
	}
	result := slices.Min(segs[0])
	for _, seg := range segs[1:] {
		if len(seg) > 0 {
			result = min(result, slices.Min(seg))
		}
	}
	return result
}

// ForEach takes in a function that returns a bool and calls it in order for
// every element in the Deque, or until the first call that returns false.
func (d *Deque[T]) ForEach(f func(T) bool) {
	for t := range d.Iter() {
		if !f(t) {
			return
		}
	}
}

/*****************************************************************************
 * ITER API
 *****************************************************************************/

// Begin returns an Iterator to the first element.
func (d *Deque[T]) Begin() Iterator[T] { return d.start }

// End returns an Iterator one past the last element.
func (d *Deque[T]) End() Iterator[T] { return d.finish }

// All returns an iterator over index-value pairs in order. If you don't need
// indexes, use Iter instead.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for _, seg := range d.slices() {
			for _, t := range seg {
				if !yield(i, t) {
					return
				}
				i++
			}
		}
	}
}

// Iter returns an iterator over values only in order. If you need indexes,
// use All instead.
func (d *Deque[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seg := range d.slices() {
			for _, t := range seg {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// RIter returns an iterator over index-value pairs from back to front.
func (d *Deque[T]) RIter() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		segs := d.slices()
		i := d.Len() - 1
		for k := len(segs) - 1; k >= 0; k-- {
			for _, t := range slices.Backward(segs[k]) {
				if !yield(i, t) {
					return
				}
				i--
			}
		}
	}
}

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrOutOfRange is returned by checked accessors and by insert and erase
// positions outside the Deque.
var ErrOutOfRange = errors.New("deque: index out of range")

// ErrNegativeCount is returned when asked to add or keep a negative number of
// elements.
var ErrNegativeCount = errors.New("deque: count cannot be negative")

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

// insert builds n elements with construct and places them before position
// pos. At either end they are constructed straight into reserved slots. In
// the middle they are built in a scratch block first, so the shift that opens
// the gap happens only once construction has succeeded.
func (d *Deque[T]) insert(pos, n int, construct constructor[T]) error {
	length := d.Len()
	switch {
	case pos < 0 || pos > length:
		return outOfRange(pos, length)
	case n < 0:
		return errors.Wrapf(ErrNegativeCount, "insert %d elements", n)
	case n == 0:
		return nil
	case n > d.alloc.MaxSize()-length:
		return errors.Wrapf(memory.ErrOutOfMemory, "deque: cannot grow length %d by %d", length, n)
	}
	if err := d.ensureMap(); err != nil {
		return err
	}

	switch pos {
	case 0:
		newStart, err := d.reserveElementsAtFront(n)
		if err != nil {
			return err
		}
		if err := d.constructSegments(newStart, d.start, construct); err != nil {
			d.releaseSpareNodes()
			return err
		}
		d.start = newStart
		return nil
	case length:
		newFinish, err := d.reserveElementsAtBack(n)
		if err != nil {
			return err
		}
		if err := d.constructSegments(d.finish, newFinish, construct); err != nil {
			d.releaseSpareNodes()
			return err
		}
		d.finish = newFinish
		return nil
	}

	scratch, err := d.alloc.Allocate(n)
	if err != nil {
		return err
	}
	defer d.alloc.Deallocate(scratch)
	if err := construct(scratch, 0); err != nil {
		return err
	}
	gap, err := d.openGap(pos, n)
	if err != nil {
		memory.Destroy(d.alloc, scratch)
		return err
	}
	d.relocateInto(gap, scratch)
	return nil
}

// locate returns a pointer to the i-th slot from start, for i >= 0.
func (d *Deque[T]) locate(i int) *T {
	off := d.start.cur + i
	bs := d.m.bufSize
	return &d.m.nodes[d.start.node+off/bs][off%bs]
}

func outOfRange(i, n int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d with length %d", i, n)
}

func (d *Deque[T]) checkBounds(i int) {
	if i < 0 || i >= d.Len() {
		panic(fmt.Sprintf("deque: index %d out of bounds with length %d", i, d.Len()))
	}
}
