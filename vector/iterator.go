package vector

import "github.com/lucasgdosr/stl/iterator"

// Iterator is a random-access position in a Vector. It is a plain index and
// stays meaningful across growth, but any insert or erase before it shifts
// the element it refers to.
type Iterator[T any] struct {
	v *Vector[T]
	i int
}

// Begin returns an Iterator to the first element.
func (v *Vector[T]) Begin() Iterator[T] { return Iterator[T]{v, 0} }

// End returns an Iterator one past the last element.
func (v *Vector[T]) End() Iterator[T] { return Iterator[T]{v, v.finish} }

// Category reports iterator.RandomAccess.
func (it Iterator[T]) Category() iterator.Category { return iterator.RandomAccess }

// Next returns the iterator one position forward.
func (it Iterator[T]) Next() Iterator[T] { it.i++; return it }

// Prev returns the iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] { it.i--; return it }

// Add returns the iterator n positions away.
func (it Iterator[T]) Add(n int) Iterator[T] { it.i += n; return it }

// Diff returns the number of positions from o to it.
func (it Iterator[T]) Diff(o Iterator[T]) int { return it.i - o.i }

// Equal returns whether both iterators refer to the same position of the
// same Vector.
func (it Iterator[T]) Equal(o Iterator[T]) bool { return it.v == o.v && it.i == o.i }

// Less orders iterators by position.
func (it Iterator[T]) Less(o Iterator[T]) bool { return it.i < o.i }

// Index returns the position of the iterator in its Vector.
func (it Iterator[T]) Index() int { return it.i }

// Value returns the element the iterator refers to.
func (it Iterator[T]) Value() T { return it.v.storage[it.i] }

// Ptr returns a pointer to the element the iterator refers to.
func (it Iterator[T]) Ptr() *T { return &it.v.storage[it.i] }

// Set assigns t to the element the iterator refers to without running
// lifecycle hooks.
func (it Iterator[T]) Set(t T) { it.v.storage[it.i] = t }
