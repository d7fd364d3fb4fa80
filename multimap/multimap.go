// Package multimap implements an ordered map that allows several values per
// key, backed by a B-tree.
package multimap

import (
	"cmp"
	"iter"

	"github.com/google/btree"
)

// degree is the B-tree degree used for every Multimap.
const degree = 32

type entry[K, V any] struct {
	key K
	seq uint64
	val V
}

// Multimap maps ordered keys to values, keeping every value inserted under a
// key. Entries are ordered by key and, within a key, by insertion order.
//
// Create one with New for cmp.Ordered keys or NewFunc with a comparison.
type Multimap[K, V any] struct {
	tree    *btree.BTreeG[entry[K, V]]
	compare func(a, b K) int
	// seq starts at 1 so that seq 0 sorts before every entry of a key.
	seq uint64
}

// New returns an empty Multimap ordered by cmp.Compare.
func New[K cmp.Ordered, V any]() *Multimap[K, V] {
	return NewFunc[K, V](cmp.Compare[K])
}

// NewFunc returns an empty Multimap ordered by compare, which must be a
// strict weak ordering returning a negative, zero or positive result.
func NewFunc[K, V any](compare func(a, b K) int) *Multimap[K, V] {
	m := &Multimap[K, V]{compare: compare}
	m.tree = btree.NewG(degree, func(a, b entry[K, V]) bool {
		if c := compare(a.key, b.key); c != 0 {
			return c < 0
		}
		return a.seq < b.seq
	})
	return m
}

// Len returns the number of entries.
func (m *Multimap[K, V]) Len() int { return m.tree.Len() }

// Insert adds v under k after any values already stored under k.
func (m *Multimap[K, V]) Insert(k K, v V) {
	m.seq++
	m.tree.ReplaceOrInsert(entry[K, V]{key: k, seq: m.seq, val: v})
}

// EqualRange returns the values stored under k in insertion order.
func (m *Multimap[K, V]) EqualRange(k K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.tree.AscendGreaterOrEqual(entry[K, V]{key: k}, func(e entry[K, V]) bool {
			return m.compare(e.key, k) == 0 && yield(e.key, e.val)
		})
	}
}

// Count returns the number of values stored under k.
func (m *Multimap[K, V]) Count(k K) int {
	n := 0
	for range m.EqualRange(k) {
		n++
	}
	return n
}

// Find returns the first value inserted under k.
func (m *Multimap[K, V]) Find(k K) (v V, ok bool) {
	for _, v := range m.EqualRange(k) {
		return v, true
	}
	return
}

// Values returns the values stored under k in insertion order.
func (m *Multimap[K, V]) Values(k K) []V {
	var out []V
	for _, v := range m.EqualRange(k) {
		out = append(out, v)
	}
	return out
}

// Erase removes every value stored under k and returns how many there were.
func (m *Multimap[K, V]) Erase(k K) int {
	var doomed []entry[K, V]
	m.tree.AscendGreaterOrEqual(entry[K, V]{key: k}, func(e entry[K, V]) bool {
		if m.compare(e.key, k) != 0 {
			return false
		}
		doomed = append(doomed, e)
		return true
	})
	for _, e := range doomed {
		m.tree.Delete(e)
	}
	return len(doomed)
}

// EraseOne removes the first value inserted under k and reports whether
// there was one.
func (m *Multimap[K, V]) EraseOne(k K) bool {
	var first entry[K, V]
	found := false
	m.tree.AscendGreaterOrEqual(entry[K, V]{key: k}, func(e entry[K, V]) bool {
		first, found = e, m.compare(e.key, k) == 0
		return false
	})
	if found {
		m.tree.Delete(first)
	}
	return found
}

// Clear removes every entry.
func (m *Multimap[K, V]) Clear() { m.tree.Clear(false) }

// All returns an iterator over every entry in order.
func (m *Multimap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.tree.Ascend(func(e entry[K, V]) bool { return yield(e.key, e.val) })
	}
}

// Ascend returns an iterator over the entries whose key is at least from.
func (m *Multimap[K, V]) Ascend(from K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.tree.AscendGreaterOrEqual(entry[K, V]{key: from}, func(e entry[K, V]) bool {
			return yield(e.key, e.val)
		})
	}
}

// Min returns the first entry.
func (m *Multimap[K, V]) Min() (k K, v V, ok bool) {
	e, ok := m.tree.Min()
	return e.key, e.val, ok
}

// Max returns the last entry.
func (m *Multimap[K, V]) Max() (k K, v V, ok bool) {
	e, ok := m.tree.Max()
	return e.key, e.val, ok
}

// Equal returns whether both Multimaps hold the same key-value pairs in the
// same order.
func Equal[K, V comparable](m1, m2 *Multimap[K, V]) bool {
	if m1.Len() != m2.Len() {
		return false
	}
	next, stop := iter.Pull2(m2.All())
	defer stop()
	for k1, v1 := range m1.All() {
		k2, v2, ok := next()
		if !ok || k1 != k2 || v1 != v2 {
			return false
		}
	}
	return true
}
