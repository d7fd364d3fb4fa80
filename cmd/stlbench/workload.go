package main

import (
	"math/rand/v2"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/lucasgdosr/stl/algorithm"
	"github.com/lucasgdosr/stl/deque"
	"github.com/lucasgdosr/stl/iterator"
	"github.com/lucasgdosr/stl/list"
	"github.com/lucasgdosr/stl/memory"
	"github.com/lucasgdosr/stl/multimap"
	"github.com/lucasgdosr/stl/stack"
	"github.com/lucasgdosr/stl/vector"
)

var errMismatch = errors.New("stlbench: container diverged from model")

// env is the state of a single workload run over one container.
type env struct {
	kind     string
	n        int
	rng      *rand.Rand
	alloc    memory.Allocator[int]
	releases []func()
}

func (e *env) onRelease(f func()) { e.releases = append(e.releases, f) }

// release frees every container the run created.
func (e *env) release() {
	for _, f := range slices.Backward(e.releases) {
		f()
	}
	e.releases = nil
}

// backend adapts a container of ints to the operations sequence workloads
// use. Operations the container lacks are nil.
type backend struct {
	pushBack   func(int) error
	pushFront  func(int) error
	popBack    func() (int, bool)
	popFront   func() (int, bool)
	insert     func(i, v int) error
	eraseRange func(first, last int) error
	len        func() int
	verify     func(model []int) error
}

func (e *env) backend() (*backend, error) {
	switch e.kind {
	case "vector":
		v := vector.MakeVectorWithAllocator(e.alloc)
		e.onRelease(v.Release)
		return &backend{
			pushBack:   v.PushBack,
			popBack:    v.PopBack,
			insert:     v.Insert,
			eraseRange: v.EraseRange,
			len:        v.Len,
			verify:     func(model []int) error { return verify(v.Begin(), v.End(), model) },
		}, nil
	case "deque":
		d, err := deque.MakeDequeWithAllocator(e.alloc)
		if err != nil {
			return nil, err
		}
		e.onRelease(d.Release)
		return &backend{
			pushBack:   d.PushBack,
			pushFront:  d.PushFront,
			popBack:    d.PopBack,
			popFront:   d.PopFront,
			insert:     d.Insert,
			eraseRange: d.EraseRange,
			len:        d.Len,
			verify:     func(model []int) error { return verify(d.Begin(), d.End(), model) },
		}, nil
	case "list":
		l := list.MakeListWithAllocator(e.alloc)
		e.onRelease(l.Clear)
		return &backend{
			pushBack:  l.PushBack,
			pushFront: l.PushFront,
			popBack:   l.PopBack,
			popFront:  l.PopFront,
			insert: func(i, v int) error {
				_, err := l.Insert(iterator.Advance(l.Begin(), i), v)
				return err
			},
			len:    l.Len,
			verify: func(model []int) error { return verify(l.Begin(), l.End(), model) },
		}, nil
	}
	return nil, errors.Newf("stlbench: %q is not a sequence container", e.kind)
}

// verify checks that [first, last) holds exactly model.
func verify[I iterator.Reader[int, I]](first, last I, model []int) error {
	if n := iterator.Distance(first, last); n != len(model) {
		return errors.Wrapf(errMismatch, "length %d, model has %d", n, len(model))
	}
	want, err := vector.CopySliceToVector(model)
	if err != nil {
		return err
	}
	defer want.Release()
	if !algorithm.Equal[int](first, last, want.Begin()) {
		return errors.Wrapf(errMismatch, "contents differ over %d elements", len(model))
	}
	return nil
}

func checkPop(v int, ok bool, model []int, at int) error {
	if !ok || v != model[at] {
		return errors.Wrapf(errMismatch, "popped %d (ok=%t), model has %d", v, ok, model[at])
	}
	return nil
}

// workload is a named scripted run. run returns the number of container
// operations it performed.
type workload struct {
	name       string
	help       string
	containers []string
	run        func(e *env) (int, error)
}

var workloads = []*workload{
	{"push-back", "append n elements", []string{"vector", "deque", "list"}, runPushBack},
	{"push-front", "prepend n elements", []string{"deque", "list"}, runPushFront},
	{"mixed-ends", "random pushes and pops at both ends", []string{"deque", "list"}, runMixedEnds},
	{"insert-middle", "insert n elements at the midpoint", []string{"vector", "deque", "list"}, runInsertMiddle},
	{"erase-middle", "fill n elements then erase short ranges", []string{"vector", "deque"}, runEraseMiddle},
	{"stack", "push n elements with random pops", []string{"vector", "deque", "list"}, runStack},
	{"multimap", "insert n entries under colliding keys", []string{"btree"}, runMultimap},
}

func lookup(name string) (*workload, bool) {
	i := slices.IndexFunc(workloads, func(w *workload) bool { return w.name == name })
	if i < 0 {
		return nil, false
	}
	return workloads[i], true
}

func runPushBack(e *env) (int, error) {
	b, err := e.backend()
	if err != nil {
		return 0, err
	}
	model := make([]int, 0, e.n)
	for i := range e.n {
		if err := b.pushBack(i); err != nil {
			return i, err
		}
		model = append(model, i)
	}
	return e.n, b.verify(model)
}

func runPushFront(e *env) (int, error) {
	b, err := e.backend()
	if err != nil {
		return 0, err
	}
	model := make([]int, e.n)
	for i := range e.n {
		if err := b.pushFront(i); err != nil {
			return i, err
		}
		model[e.n-1-i] = i
	}
	return e.n, b.verify(model)
}

func runMixedEnds(e *env) (int, error) {
	b, err := e.backend()
	if err != nil {
		return 0, err
	}
	var model []int
	for i := range e.n {
		switch op := e.rng.IntN(6); {
		case op == 4 && len(model) > 0:
			v, ok := b.popFront()
			if err := checkPop(v, ok, model, 0); err != nil {
				return i, err
			}
			model = model[1:]
		case op == 5 && len(model) > 0:
			v, ok := b.popBack()
			if err := checkPop(v, ok, model, len(model)-1); err != nil {
				return i, err
			}
			model = model[:len(model)-1]
		case op%2 == 0:
			if err := b.pushFront(i); err != nil {
				return i, err
			}
			model = slices.Insert(model, 0, i)
		default:
			if err := b.pushBack(i); err != nil {
				return i, err
			}
			model = append(model, i)
		}
	}
	return e.n, b.verify(model)
}

func runInsertMiddle(e *env) (int, error) {
	b, err := e.backend()
	if err != nil {
		return 0, err
	}
	var model []int
	for i := range e.n {
		pos := len(model) / 2
		if err := b.insert(pos, i); err != nil {
			return i, err
		}
		model = slices.Insert(model, pos, i)
	}
	return e.n, b.verify(model)
}

func runEraseMiddle(e *env) (int, error) {
	b, err := e.backend()
	if err != nil {
		return 0, err
	}
	model := make([]int, 0, e.n)
	for i := range e.n {
		if err := b.pushBack(i); err != nil {
			return i, err
		}
		model = append(model, i)
	}
	ops := e.n
	for len(model) > e.n/4 {
		first := len(model) / 3
		last := min(len(model), first+1+e.rng.IntN(8))
		if err := b.eraseRange(first, last); err != nil {
			return ops, err
		}
		model = slices.Delete(model, first, last)
		ops++
	}
	if b.len() != len(model) {
		return ops, errors.Wrapf(errMismatch, "length %d, model has %d", b.len(), len(model))
	}
	return ops, b.verify(model)
}

func runStack(e *env) (int, error) {
	switch e.kind {
	case "vector":
		v := vector.MakeVectorWithAllocator(e.alloc)
		e.onRelease(v.Release)
		return driveStack(e, stack.MakeStackOn[int](v))
	case "deque":
		d, err := deque.MakeDequeWithAllocator(e.alloc)
		if err != nil {
			return 0, err
		}
		e.onRelease(d.Release)
		return driveStack(e, stack.MakeStackOn[int](d))
	case "list":
		l := list.MakeListWithAllocator(e.alloc)
		e.onRelease(l.Clear)
		return driveStack(e, stack.MakeStackOn[int](l))
	}
	return 0, errors.Newf("stlbench: cannot build a stack on %q", e.kind)
}

func driveStack[C stack.Container[int]](e *env, s *stack.Stack[int, C]) (int, error) {
	var model []int
	ops := 0
	pop := func() error {
		v, ok := s.Pop()
		if err := checkPop(v, ok, model, len(model)-1); err != nil {
			return err
		}
		model = model[:len(model)-1]
		ops++
		return nil
	}
	for i := range e.n {
		if err := s.Push(i); err != nil {
			return ops, err
		}
		model = append(model, i)
		ops++
		if e.rng.IntN(3) == 0 {
			if err := pop(); err != nil {
				return ops, err
			}
		}
	}
	if s.Len() != len(model) {
		return ops, errors.Wrapf(errMismatch, "stack holds %d, model has %d", s.Len(), len(model))
	}
	for !s.Empty() {
		if err := pop(); err != nil {
			return ops, err
		}
	}
	return ops, nil
}

func runMultimap(e *env) (int, error) {
	if e.kind != "btree" {
		return 0, errors.Newf("stlbench: multimap has no %q variant", e.kind)
	}
	m := multimap.New[int, int]()
	e.onRelease(m.Clear)
	keys := max(1, e.n/8)
	model := make(map[int][]int)
	for i := range e.n {
		k := e.rng.IntN(keys)
		m.Insert(k, i)
		model[k] = append(model[k], i)
	}
	ops := e.n
	for k, vs := range model {
		if got := m.Values(k); !slices.Equal(got, vs) {
			return ops, errors.Wrapf(errMismatch, "key %d holds %v, model has %v", k, got, vs)
		}
		ops++
	}
	prev := -1
	for k := range m.All() {
		if k < prev {
			return ops, errors.Wrapf(errMismatch, "key %d after %d", k, prev)
		}
		prev = k
	}
	want := e.n
	for k, vs := range model {
		if k%2 == 0 {
			if got := m.Erase(k); got != len(vs) {
				return ops, errors.Wrapf(errMismatch, "erased %d under key %d, model has %d", got, k, len(vs))
			}
			want -= len(vs)
			ops++
		}
	}
	if m.Len() != want {
		return ops, errors.Wrapf(errMismatch, "multimap holds %d, model has %d", m.Len(), want)
	}
	return ops, nil
}
