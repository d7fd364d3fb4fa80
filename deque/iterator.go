package deque

import "github.com/lucasgdosr/stl/iterator"

// Iterator is a random-access position in a Deque. It records the map slot
// of its buffer and its offset inside that buffer, and moves to the adjacent
// buffer when it steps past either end of the current one.
//
// Any operation that reallocates the map invalidates every Iterator. Pushes
// and pops that do not reallocate the map only invalidate iterators at the
// edge they touch.
type Iterator[T any] struct {
	m    *blockMap[T]
	node int
	cur  int
	buf  []T
}

func (it *Iterator[T]) setNode(n int) {
	it.node = n
	if n >= 0 && n < len(it.m.nodes) {
		it.buf = it.m.nodes[n]
	} else {
		it.buf = nil
	}
}

// Category reports iterator.RandomAccess.
func (it Iterator[T]) Category() iterator.Category { return iterator.RandomAccess }

// Next returns the iterator one position forward, moving to the next
// buffer when it steps past the end of the current one.
func (it Iterator[T]) Next() Iterator[T] {
	it.cur++
	if it.cur == it.m.bufSize {
		it.setNode(it.node + 1)
		it.cur = 0
	}
	return it
}

// Prev returns the iterator one position back.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.cur == 0 {
		it.setNode(it.node - 1)
		it.cur = it.m.bufSize
	}
	it.cur--
	return it
}

// Add returns the iterator n positions away. Offsets that leave the current
// buffer are split into a whole number of buffers, rounded toward negative
// infinity, and a remainder.
func (it Iterator[T]) Add(n int) Iterator[T] {
	if n == 0 {
		return it
	}
	bs := it.m.bufSize
	offset := it.cur + n
	if offset >= 0 && offset < bs {
		it.cur = offset
		return it
	}
	var nodeOffset int
	if offset > 0 {
		nodeOffset = offset / bs
	} else {
		nodeOffset = -((-offset - 1) / bs) - 1
	}
	it.setNode(it.node + nodeOffset)
	it.cur = offset - nodeOffset*bs
	return it
}

// Diff returns the number of positions from o to it. Iterators of a Deque
// with no map, such as after Release, are at distance 0.
func (it Iterator[T]) Diff(o Iterator[T]) int {
	if it.m == nil {
		return 0
	}
	return it.m.bufSize*(it.node-o.node) + it.cur - o.cur
}

// Equal returns whether both iterators refer to the same position of the
// same Deque.
func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.m == o.m && it.node == o.node && it.cur == o.cur
}

// Less orders iterators by buffer, then by offset.
func (it Iterator[T]) Less(o Iterator[T]) bool {
	return it.node < o.node || (it.node == o.node && it.cur < o.cur)
}

// Value returns the element the iterator refers to.
func (it Iterator[T]) Value() T { return it.buf[it.cur] }

// Ptr returns a pointer to the element the iterator refers to.
func (it Iterator[T]) Ptr() *T { return &it.buf[it.cur] }

// Set assigns t to the element the iterator refers to without running
// lifecycle hooks.
func (it Iterator[T]) Set(t T) { it.buf[it.cur] = t }
