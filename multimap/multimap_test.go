package multimap

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	K string
	V int
}

func pairs[K, V any](seq func(func(K, V) bool)) []struct {
	K K
	V V
} {
	var out []struct {
		K K
		V V
	}
	for k, v := range seq {
		out = append(out, struct {
			K K
			V V
		}{k, v})
	}
	return out
}

func collect(m *Multimap[string, int]) []pair {
	var out []pair
	for k, v := range m.All() {
		out = append(out, pair{k, v})
	}
	return out
}

func sample() *Multimap[string, int] {
	m := New[string, int]()
	m.Insert("b", 1)
	m.Insert("a", 2)
	m.Insert("b", 3)
	m.Insert("c", 4)
	m.Insert("b", 5)
	return m
}

func TestOrderedByKeyThenInsertion(t *testing.T) {
	m := sample()
	want := []pair{{"a", 2}, {"b", 1}, {"b", 3}, {"b", 5}, {"c", 4}}
	if diff := cmp.Diff(want, collect(m)); diff != "" {
		t.Fatalf("entries (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, m.Len())
}

func TestLookup(t *testing.T) {
	m := sample()
	assert.Equal(t, 3, m.Count("b"))
	assert.Zero(t, m.Count("z"))
	assert.Equal(t, []int{1, 3, 5}, m.Values("b"))
	assert.Nil(t, m.Values("aa"))

	v, ok := m.Find("b")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = m.Find("bb")
	assert.False(t, ok)

	got := pairs[string, int](m.EqualRange("c"))
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].V)

	var from []string
	for k := range m.Ascend("b") {
		from = append(from, k)
	}
	assert.Equal(t, []string{"b", "b", "b", "c"}, from)

	k, v, ok := m.Min()
	assert.True(t, ok)
	assert.Equal(t, "a", k)
	assert.Equal(t, 2, v)
	k, v, ok = m.Max()
	assert.True(t, ok)
	assert.Equal(t, "c", k)
	assert.Equal(t, 4, v)
}

func TestErase(t *testing.T) {
	m := sample()
	assert.True(t, m.EraseOne("b"))
	assert.Equal(t, []int{3, 5}, m.Values("b"))
	assert.False(t, m.EraseOne("x"))

	assert.Equal(t, 2, m.Erase("b"))
	assert.Zero(t, m.Erase("b"))
	assert.Equal(t, []pair{{"a", 2}, {"c", 4}}, collect(m))

	m.Insert("b", 6)
	assert.Equal(t, []pair{{"a", 2}, {"b", 6}, {"c", 4}}, collect(m))

	m.Clear()
	assert.Zero(t, m.Len())
	_, _, ok := m.Min()
	assert.False(t, ok)
}

func TestNewFunc(t *testing.T) {
	m := NewFunc[string, int](func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	m.Insert("B", 1)
	m.Insert("a", 2)
	m.Insert("b", 3)
	assert.Equal(t, 2, m.Count("b"))
	assert.Equal(t, []int{1, 3}, m.Values("B"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(sample(), sample()))
	other := sample()
	other.Insert("a", 0)
	assert.False(t, Equal(sample(), other))

	a, b := New[int, int](), New[int, int]()
	a.Insert(1, 1)
	b.Insert(1, 2)
	assert.False(t, Equal(a, b))
}
