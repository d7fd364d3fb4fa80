package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasgdosr/stl/deque"
	"github.com/lucasgdosr/stl/list"
	"github.com/lucasgdosr/stl/memory"
	"github.com/lucasgdosr/stl/vector"
)

var (
	_ Container[int] = (*vector.Vector[int])(nil)
	_ Container[int] = (*deque.Deque[int])(nil)
	_ Container[int] = (*list.List[int])(nil)
)

func exercise[C Container[int]](t *testing.T, s *Stack[int, C]) {
	t.Helper()
	assert.True(t, s.Empty())
	_, ok := s.Top()
	assert.False(t, ok)
	_, ok = s.Pop()
	assert.False(t, ok)

	for i := range 1000 {
		require.NoError(t, s.Push(i))
	}
	assert.Equal(t, 1000, s.Len())
	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, 999, top)

	for i := 999; i >= 0; i-- {
		v, ok := s.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	assert.True(t, s.Empty())
}

func TestStackOnEachContainer(t *testing.T) {
	t.Run("deque", func(t *testing.T) { exercise(t, MakeStack[int]()) })
	t.Run("vector", func(t *testing.T) { exercise(t, MakeStackOn[int](vector.MakeVector[int]())) })
	t.Run("list", func(t *testing.T) { exercise(t, MakeStackOn[int](list.MakeList[int]())) })
}

func TestMakeStackOnKeepsContents(t *testing.T) {
	v, err := vector.CopySliceToVector([]int{1, 2, 3})
	require.NoError(t, err)
	s := MakeStackOn[int](v)
	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, 3, top)
	require.NoError(t, s.Push(4))
	assert.Same(t, v, s.Underlying())
	assert.Equal(t, []int{1, 2, 3, 4}, v.Data())
}

func TestPushFailure(t *testing.T) {
	v := vector.MakeVectorWithAllocator[int](memory.New[int](memory.NewLimited(2 * memory.SizeOf[int]())))
	require.NoError(t, v.Reserve(2))
	s := MakeStackOn[int](v)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))
	err := s.Push(3)
	require.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Equal(t, 2, s.Len())
	top, _ := s.Top()
	assert.Equal(t, 2, top)
}
