package vector

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/lucasgdosr/stl/memory"
)

// Vector is a contiguous, growable sequence whose storage and element
// lifecycle go through a memory.Allocator.
//
// To create a Vector, use one of the constructors: MakeVector(),
// MakeVectorWithAllocator(a), MakeVectorN(n), MakeVectorFill(n, t),
// CopySliceToVector(s) or CollectVector(seq). A zero Vector has no allocator
// and panics on the first growth. nil Vectors panic when called, except for
// Len, Cap and Empty.
//
// When the storage is full, the capacity grows to Len() + max(Len(), n),
// where n is the number of elements being added. Growth constructs the new
// elements in fresh storage before relocating the old ones, so a failed
// construction leaves the Vector exactly as it was. Any growth invalidates
// every Iterator and pointer into the Vector.
type Vector[T any] struct {
	alloc   memory.Allocator[T]
	storage []T // len(storage) is the capacity
	finish  int
}

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// MakeVector returns an empty Vector using a standard allocator on its own
// heap.
func MakeVector[T any]() *Vector[T] {
	return MakeVectorWithAllocator[T](nil)
}

// MakeVectorWithAllocator returns an empty Vector drawing from a. A nil a
// gets a standard allocator on its own heap.
func MakeVectorWithAllocator[T any](a memory.Allocator[T]) *Vector[T] {
	if a == nil {
		a = memory.New[T](nil)
	}
	return &Vector[T]{alloc: a}
}

// MakeVectorN returns a Vector of n default-constructed elements.
func MakeVectorN[T any](n int) (*Vector[T], error) {
	v := MakeVector[T]()
	if err := v.Resize(n); err != nil {
		return nil, err
	}
	return v, nil
}

// MakeVectorFill returns a Vector of n copies of t.
func MakeVectorFill[T any](n int, t T) (*Vector[T], error) {
	v := MakeVector[T]()
	if err := v.ResizeFill(n, t); err != nil {
		return nil, err
	}
	return v, nil
}

// CopySliceToVector returns a Vector holding copies of the elements of s,
// with capacity exactly len(s).
func CopySliceToVector[T any](s []T) (*Vector[T], error) {
	v := MakeVector[T]()
	if err := v.InsertSlice(0, s); err != nil {
		return nil, err
	}
	return v, nil
}

// CollectVector returns a Vector holding copies of the values of seq.
func CollectVector[T any](seq iter.Seq[T]) (*Vector[T], error) {
	v := MakeVector[T]()
	if err := v.InsertSeq(0, seq); err != nil {
		return nil, err
	}
	return v, nil
}

/*****************************************************************************
 * CAPACITY
 *****************************************************************************/

// Len returns the number of elements, or 0 for a nil Vector.
func (v *Vector[T]) Len() int {
	if v == nil {
		return 0
	}
	return v.finish
}

// Cap returns the number of elements the storage can hold without growing,
// or 0 for a nil Vector.
func (v *Vector[T]) Cap() int {
	if v == nil {
		return 0
	}
	return len(v.storage)
}

// Empty returns whether the Vector has no elements. A nil Vector is empty.
func (v *Vector[T]) Empty() bool { return v.Len() == 0 }

// Allocator returns the allocator the Vector draws from.
func (v *Vector[T]) Allocator() memory.Allocator[T] { return v.alloc }

// Reserve grows the storage to exactly n slots if it is smaller. It
// invalidates every Iterator when it reallocates.
func (v *Vector[T]) Reserve(n int) error {
	if n <= len(v.storage) {
		return nil
	}
	return v.relocate(n, v.finish, 0, nil)
}

// ShrinkToFit reallocates the storage to exactly Len() slots.
func (v *Vector[T]) ShrinkToFit() error {
	switch {
	case len(v.storage) == v.finish:
		return nil
	case v.finish == 0:
		v.alloc.Deallocate(v.storage)
		v.storage = nil
		return nil
	}
	return v.relocate(v.finish, v.finish, 0, nil)
}

// Resize destroys the elements past n, or default-constructs new ones at the
// back until there are n.
func (v *Vector[T]) Resize(n int) error {
	return v.resize(n, func(gap []T) error { return memory.UninitializedDefault(v.alloc, gap) })
}

// ResizeFill is Resize with new elements copied from t.
func (v *Vector[T]) ResizeFill(n int, t T) error {
	return v.resize(n, func(gap []T) error { return memory.UninitializedFill(v.alloc, gap, t) })
}

func (v *Vector[T]) resize(n int, fill func([]T) error) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCount, "resize to %d", n)
	}
	if n <= v.finish {
		v.DropBack(v.finish - n)
		return nil
	}
	return v.insert(v.finish, n-v.finish, fill)
}

/*****************************************************************************
 * ELEMENT ACCESS
 *****************************************************************************/

// At returns the i-th element, or an error wrapping ErrOutOfRange.
func (v *Vector[T]) At(i int) (t T, err error) {
	if i < 0 || i >= v.Len() {
		return t, outOfRange(i, v.Len())
	}
	return v.storage[i], nil
}

// AtUnsafe returns the i-th element without checking i against Len. An index
// between Len and Cap returns an unconstructed zero value.
func (v *Vector[T]) AtUnsafe(i int) T { return v.storage[i] }

// Ptr returns a pointer to the i-th element. Panics if out of bounds. The
// pointer is invalidated by any growth.
func (v *Vector[T]) Ptr(i int) *T {
	v.checkBounds(i)
	return &v.storage[i]
}

// Set replaces the i-th element with a copy of t, destroying the old one. It
// returns an error wrapping ErrOutOfRange, or the construction error, in
// which case the element is unchanged.
func (v *Vector[T]) Set(i int, t T) error {
	if i < 0 || i >= v.Len() {
		return outOfRange(i, v.Len())
	}
	var c T
	if err := v.alloc.Construct(&c, t); err != nil {
		return err
	}
	v.alloc.Destroy(&v.storage[i])
	v.storage[i] = c
	return nil
}

// SetUnsafe assigns t to the i-th slot. It runs no lifecycle hooks and does
// not check i.
func (v *Vector[T]) SetUnsafe(i int, t T) { v.storage[i] = t }

// PeekFront returns the first element, or false if the Vector is empty.
func (v *Vector[T]) PeekFront() (t T, ok bool) {
	if v.Len() == 0 {
		return
	}
	return v.storage[0], true
}

// PeekBack returns the last element, or false if the Vector is empty.
func (v *Vector[T]) PeekBack() (t T, ok bool) {
	if v.Len() == 0 {
		return
	}
	return v.storage[v.finish-1], true
}

// Data returns the constructed elements. The slice aliases the storage and is
// invalidated by any growth.
func (v *Vector[T]) Data() []T {
	if v == nil {
		return nil
	}
	return v.storage[:v.finish]
}

/*****************************************************************************
 * MODIFIERS
 *****************************************************************************/

// PushBack appends a copy of t. If the construction fails the Vector is
// unchanged, even when the push needed to grow the storage.
func (v *Vector[T]) PushBack(t T) error {
	if v.finish < len(v.storage) {
		if err := v.alloc.Construct(&v.storage[v.finish], t); err != nil {
			return err
		}
		v.finish++
		return nil
	}
	return v.insert(v.finish, 1, func(gap []T) error { return v.alloc.Construct(&gap[0], t) })
}

// EmplaceBack appends an element built in place by init.
func (v *Vector[T]) EmplaceBack(init func(*T) error) error {
	return v.Emplace(v.finish, init)
}

// Insert inserts a copy of t before position i. i may equal Len.
func (v *Vector[T]) Insert(i int, t T) error {
	return v.insert(i, 1, func(gap []T) error { return v.alloc.Construct(&gap[0], t) })
}

// InsertN inserts n copies of t before position i.
func (v *Vector[T]) InsertN(i, n int, t T) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeCount, "insert %d elements", n)
	}
	return v.insert(i, n, func(gap []T) error { return memory.UninitializedFill(v.alloc, gap, t) })
}

// InsertSlice inserts copies of the elements of s before position i. s must
// not alias the Vector's storage.
func (v *Vector[T]) InsertSlice(i int, s []T) error {
	return v.insert(i, len(s), func(gap []T) error {
		_, err := memory.UninitializedCopy(v.alloc, gap, s)
		return err
	})
}

// InsertSeq inserts copies of the values of seq before position i. The values
// are collected first, so seq is consumed exactly once even if the insertion
// then fails.
func (v *Vector[T]) InsertSeq(i int, seq iter.Seq[T]) error {
	if i < 0 || i > v.finish {
		return outOfRange(i, v.finish)
	}
	staged := MakeVectorWithAllocator(v.alloc)
	defer staged.Release()
	for t := range seq {
		if err := staged.PushBack(t); err != nil {
			return err
		}
	}
	return v.insert(i, staged.finish, func(gap []T) error {
		memory.UninitializedMove(gap, staged.storage[:staged.finish])
		staged.finish = 0
		return nil
	})
}

// Emplace inserts an element built in place by init before position i.
func (v *Vector[T]) Emplace(i int, init func(*T) error) error {
	return v.insert(i, 1, func(gap []T) error { return memory.Emplace(&gap[0], init) })
}

// Erase destroys the element at position i and closes the gap.
func (v *Vector[T]) Erase(i int) error {
	if i < 0 || i >= v.finish {
		return outOfRange(i, v.finish)
	}
	return v.EraseRange(i, i+1)
}

// EraseRange destroys the elements in [first, last) and shifts the suffix
// left over them.
func (v *Vector[T]) EraseRange(first, last int) error {
	if first < 0 || first > last || last > v.finish {
		return errors.Wrapf(ErrOutOfRange, "erase [%d, %d) with length %d", first, last, v.finish)
	}
	n := last - first
	if n == 0 {
		return nil
	}
	memory.Destroy(v.alloc, v.storage[first:last])
	copy(v.storage[first:], v.storage[last:v.finish])
	clear(v.storage[v.finish-n : v.finish])
	v.finish -= n
	return nil
}

// PopBack removes the last element and returns it. The element is moved out
// to the caller, not destroyed. If the Vector is empty, it returns false.
func (v *Vector[T]) PopBack() (t T, ok bool) {
	if v.Len() == 0 {
		return
	}
	v.finish--
	t = v.storage[v.finish]
	var zero T
	v.storage[v.finish] = zero
	return t, true
}

// DropBack destroys the last n elements, or every element if there are fewer
// than n. A negative n drops nothing.
func (v *Vector[T]) DropBack(n int) {
	if n <= 0 {
		return
	}
	n = min(n, v.finish)
	memory.Destroy(v.alloc, v.storage[v.finish-n:v.finish])
	v.finish -= n
}

// Assign replaces the contents with n copies of t. On failure the Vector is
// unchanged.
func (v *Vector[T]) Assign(n int, t T) error {
	fresh := MakeVectorWithAllocator(v.alloc)
	if err := fresh.ResizeFill(n, t); err != nil {
		return err
	}
	v.replace(fresh)
	return nil
}

// AssignSlice replaces the contents with copies of the elements of s. On
// failure the Vector is unchanged.
func (v *Vector[T]) AssignSlice(s []T) error {
	fresh := MakeVectorWithAllocator(v.alloc)
	if err := fresh.InsertSlice(0, s); err != nil {
		return err
	}
	v.replace(fresh)
	return nil
}

func (v *Vector[T]) replace(fresh *Vector[T]) {
	v.SwapContents(fresh)
	fresh.Release()
}

// Clear destroys every element and keeps the storage.
func (v *Vector[T]) Clear() { v.DropBack(v.finish) }

// Release destroys every element and returns the storage to the allocator.
// The Vector remains usable.
func (v *Vector[T]) Release() {
	v.Clear()
	v.alloc.Deallocate(v.storage)
	v.storage = nil
}

// Clone returns a Vector with copies of the elements, drawing from the same
// allocator, with capacity exactly Len.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	c := MakeVectorWithAllocator(v.alloc)
	if err := c.InsertSlice(0, v.Data()); err != nil {
		return nil, err
	}
	return c, nil
}

// Swap swaps the elements at positions i and j. Panics if out of bounds.
func (v *Vector[T]) Swap(i, j int) {
	v.checkBounds(i)
	v.checkBounds(j)
	v.storage[i], v.storage[j] = v.storage[j], v.storage[i]
}

// SwapContents exchanges the elements and allocators of v and o in O(1).
func (v *Vector[T]) SwapContents(o *Vector[T]) {
	*v, *o = *o, *v
}

/*****************************************************************************
 * SEARCH AND COMPARISON
 *****************************************************************************/

// Equal returns whether both Vectors have the same length and the same
// elements in the same order. Two nil Vectors are equal, but an empty Vector
// and nil are not.
func Equal[T comparable](v1, v2 *Vector[T]) bool {
	if v1 == nil || v2 == nil {
		return v1 == v2
	}
	return slices.Equal(v1.Data(), v2.Data())
}

// EqualFunc is Equal with a caller-supplied element comparison.
func (v *Vector[T]) EqualFunc(o *Vector[T], f func(T, T) bool) bool {
	if v == nil || o == nil {
		return v == o
	}
	return slices.EqualFunc(v.Data(), o.Data(), f)
}

// Compare compares the Vectors lexicographically, with the same semantics as
// slices.Compare.
func Compare[T cmp.Ordered](v1, v2 *Vector[T]) int {
	return slices.Compare(v1.Data(), v2.Data())
}

// Index returns the index of the first occurrence of t, or -1.
func Index[T comparable](v *Vector[T], t T) int {
	return slices.Index(v.Data(), t)
}

// IndexFunc returns the index of the first element satisfying f, or -1.
func (v *Vector[T]) IndexFunc(f func(T) bool) int {
	return slices.IndexFunc(v.Data(), f)
}

// Contains returns whether t is in the Vector.
func Contains[T comparable](v *Vector[T], t T) bool {
	return Index(v, t) >= 0
}

/*****************************************************************************
 * ITER API
 *****************************************************************************/

// All returns an iterator over index-value pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] { return slices.All(v.Data()) }

// Iter returns an iterator over values in order.
func (v *Vector[T]) Iter() iter.Seq[T] { return slices.Values(v.Data()) }

// RIter returns an iterator over index-value pairs from back to front.
func (v *Vector[T]) RIter() iter.Seq2[int, T] { return slices.Backward(v.Data()) }

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrOutOfRange is returned by checked accessors and by insert and erase
// positions outside the Vector.
var ErrOutOfRange = errors.New("vector: index out of range")

// ErrNegativeCount is returned when asked to add or keep a negative number of
// elements.
var ErrNegativeCount = errors.New("vector: count cannot be negative")

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

// insert opens an n-slot gap before pos and lets fill construct into it. fill
// must be all-or-nothing. When the storage must grow, fill runs on the new
// storage before any existing element moves.
func (v *Vector[T]) insert(pos, n int, fill func(gap []T) error) error {
	if pos < 0 || pos > v.finish {
		return outOfRange(pos, v.finish)
	}
	if n == 0 {
		return nil
	}
	if n <= len(v.storage)-v.finish {
		return v.insertInPlace(pos, n, fill)
	}
	newCap, err := v.grow(n)
	if err != nil {
		return err
	}
	return v.relocate(newCap, pos, n, fill)
}

func (v *Vector[T]) insertInPlace(pos, n int, fill func(gap []T) error) error {
	end := v.finish
	copy(v.storage[pos+n:end+n], v.storage[pos:end])
	clear(v.storage[pos : pos+min(n, end-pos)])
	if err := fill(v.storage[pos : pos+n]); err != nil {
		copy(v.storage[pos:end], v.storage[pos+n:end+n])
		clear(v.storage[end : end+n])
		return err
	}
	v.finish += n
	return nil
}

// relocate moves the elements into fresh storage of newCap slots, leaving an
// n-slot gap at pos that fill constructs into first.
func (v *Vector[T]) relocate(newCap, pos, n int, fill func(gap []T) error) error {
	buf, err := v.alloc.Allocate(newCap)
	if err != nil {
		return err
	}
	if fill != nil {
		if err := fill(buf[pos : pos+n]); err != nil {
			v.alloc.Deallocate(buf)
			return err
		}
	}
	memory.UninitializedMove(buf[:pos], v.storage[:pos])
	memory.UninitializedMove(buf[pos+n:], v.storage[pos:v.finish])
	v.alloc.Deallocate(v.storage)
	v.storage = buf
	v.finish += n
	return nil
}

// grow returns the capacity needed to add n elements.
func (v *Vector[T]) grow(n int) (int, error) {
	limit := v.alloc.MaxSize()
	if n > limit-v.finish {
		return 0, errors.Wrapf(memory.ErrOutOfMemory,
			"vector: cannot grow length %d by %d (max %d)", v.finish, n, limit)
	}
	if v.finish > limit-v.finish {
		return limit, nil
	}
	return v.finish + max(v.finish, n), nil
}

func outOfRange(i, n int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d with length %d", i, n)
}

func (v *Vector[T]) checkBounds(i int) {
	if i < 0 || i >= v.Len() {
		panic(fmt.Sprintf("vector: index %d out of bounds with length %d", i, v.Len()))
	}
}
