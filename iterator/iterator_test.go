package iterator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasgdosr/stl/iterator"
)

type sliceIter struct {
	s   []int
	i   int
	cat iterator.Category
}

func (it sliceIter) Category() iterator.Category { return it.cat }
func (it sliceIter) Next() sliceIter             { it.i++; return it }
func (it sliceIter) Prev() sliceIter             { it.i--; return it }
func (it sliceIter) Add(n int) sliceIter         { it.i += n; return it }
func (it sliceIter) Diff(o sliceIter) int        { return it.i - o.i }
func (it sliceIter) Equal(o sliceIter) bool      { return it.i == o.i }
func (it sliceIter) Value() int                  { return it.s[it.i] }

func span(s []int, cat iterator.Category) (sliceIter, sliceIter) {
	return sliceIter{s, 0, cat}, sliceIter{s, len(s), cat}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "input", iterator.Input.String())
	assert.Equal(t, "random-access", iterator.RandomAccess.String())
	assert.Equal(t, "Category(9)", iterator.Category(9).String())
	assert.Less(t, iterator.Forward, iterator.Bidirectional)
}

func TestDistance(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	for _, cat := range []iterator.Category{iterator.Forward, iterator.RandomAccess} {
		t.Run(cat.String(), func(t *testing.T) {
			first, last := span(s, cat)
			assert.Equal(t, 5, iterator.Distance(first, last))
			assert.Equal(t, 0, iterator.Distance(last, last))
		})
	}
}

func TestAdvance(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}

	first, _ := span(s, iterator.RandomAccess)
	assert.Equal(t, 4, iterator.Advance(first, 3).Value())
	assert.Equal(t, 2, iterator.Advance(iterator.Advance(first, 4), -3).Value())

	bfirst, _ := span(s, iterator.Bidirectional)
	it := iterator.Advance(bfirst, uint8(4))
	assert.Equal(t, 5, it.Value())
	assert.Equal(t, 3, iterator.Advance(it, -2).Value())

	ffirst, _ := span(s, iterator.Forward)
	assert.Panics(t, func() { iterator.Advance(ffirst.Next(), -1) })
}

func TestCollectAndValues(t *testing.T) {
	s := []int{3, 1, 4, 1, 5}
	first, last := span(s, iterator.Forward)
	assert.Equal(t, s, iterator.Collect[int](first, last))

	var got []int
	for v := range iterator.Values[int](first, last) {
		if v == 4 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 1}, got)

	empty, _ := span(nil, iterator.RandomAccess)
	assert.Empty(t, iterator.Collect[int](empty, empty))
}

func TestReverse(t *testing.T) {
	s := []int{1, 2, 3, 4}
	first, last := span(s, iterator.RandomAccess)
	rfirst := iterator.MakeReverse[int](last)
	rlast := iterator.MakeReverse[int](first)

	assert.Equal(t, []int{4, 3, 2, 1}, iterator.Collect[int](rfirst, rlast))
	assert.Equal(t, 4, iterator.Distance(rfirst, rlast))
	assert.Equal(t, 2, rfirst.Add(2).Value())
	assert.Equal(t, 4, rfirst.Add(2).Prev().Prev().Value())
	require.True(t, rfirst.Add(4).Equal(rlast))
	assert.Equal(t, last, rfirst.Base())

	bfirst, blast := span(s, iterator.Bidirectional)
	rb := iterator.MakeReverse[int](blast)
	assert.Equal(t, []int{4, 3, 2, 1}, iterator.Collect[int](rb, iterator.MakeReverse[int](bfirst)))
	assert.Panics(t, func() { rb.Add(1) })
}
