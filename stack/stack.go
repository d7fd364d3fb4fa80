// Package stack provides a LIFO adaptor over any container with a back end.
package stack

import (
	"github.com/lucasgdosr/stl/deque"
)

// Container is the sequence a Stack stores its elements in.
// *vector.Vector, *deque.Deque and *list.List all implement it.
type Container[T any] interface {
	PeekBack() (T, bool)
	PushBack(t T) error
	PopBack() (T, bool)
	Empty() bool
	Len() int
}

// Stack is a last-in first-out adaptor. The top of the stack is the back of
// its container.
type Stack[T any, C Container[T]] struct {
	c C
}

// MakeStack returns an empty Stack backed by a deque.
func MakeStack[T any]() *Stack[T, *deque.Deque[T]] {
	return &Stack[T, *deque.Deque[T]]{c: deque.MakeDeque[T]()}
}

// MakeStackOn returns a Stack that uses c as its storage. Elements already
// in c are on the stack, with the back of c on top.
func MakeStackOn[T any, C Container[T]](c C) *Stack[T, C] {
	return &Stack[T, C]{c: c}
}

// Len returns the number of elements on the stack.
func (s *Stack[T, C]) Len() int { return s.c.Len() }

// Empty returns whether the stack has no elements.
func (s *Stack[T, C]) Empty() bool { return s.c.Empty() }

// Top returns the most recently pushed element without removing it.
func (s *Stack[T, C]) Top() (T, bool) { return s.c.PeekBack() }

// Push puts t on top of the stack.
func (s *Stack[T, C]) Push(t T) error { return s.c.PushBack(t) }

// Pop removes the top element and returns it.
func (s *Stack[T, C]) Pop() (T, bool) { return s.c.PopBack() }

// Underlying returns the container the stack is stored in.
func (s *Stack[T, C]) Underlying() C { return s.c }
