package vector

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasgdosr/stl/internal/testutil"
	"github.com/lucasgdosr/stl/memory"
)

// checkInvariants verifies the size/capacity relation and that every slot
// past the end is unconstructed.
func checkInvariants[T comparable](t *testing.T, v *Vector[T]) {
	t.Helper()
	require.GreaterOrEqual(t, v.Len(), 0)
	require.LessOrEqual(t, v.Len(), v.Cap())
	var zero T
	for i := v.Len(); i < v.Cap(); i++ {
		require.Equal(t, zero, v.storage[i], "slot %d past the end is not zeroed", i)
	}
}

func mustCopy[T any](t *testing.T, s []T) *Vector[T] {
	t.Helper()
	v, err := CopySliceToVector(s)
	require.NoError(t, err)
	return v
}

func TestFillThenSetUnsafe(t *testing.T) {
	v, err := MakeVectorFill(3, -1)
	require.NoError(t, err)
	v.SetUnsafe(2, 2)
	assert.Equal(t, []int{-1, -1, 2}, v.Data())
	checkInvariants(t, v)
}

func TestMakeVectorN(t *testing.T) {
	v, err := MakeVectorN[string](4)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", "", ""}, v.Data())

	_, err = MakeVectorN[int](-1)
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestEraseRangeMiddle(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3, 4, 5})
	require.NoError(t, v.EraseRange(1, v.Len()-1))
	assert.Equal(t, []int{1, 5}, v.Data())
	assert.Equal(t, 5, v.Cap())
	checkInvariants(t, v)
}

func TestGrowthPolicy(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3})
	assert.Equal(t, 3, v.Cap())

	require.NoError(t, v.PushBack(4))
	assert.Equal(t, 6, v.Cap())

	require.NoError(t, v.InsertN(0, 10, 0))
	assert.Equal(t, 14, v.Len())
	// 4 + max(4, 10)
	assert.Equal(t, 14, v.Cap())

	e := MakeVector[int]()
	var caps []int
	for i := range 9 {
		require.NoError(t, e.PushBack(i))
		caps = append(caps, e.Cap())
	}
	assert.Equal(t, []int{1, 2, 4, 4, 8, 8, 8, 8, 16}, caps)
}

func TestAccessors(t *testing.T) {
	v := mustCopy(t, []int{10, 20, 30})

	got, err := v.At(1)
	require.NoError(t, err)
	assert.Equal(t, 20, got)

	for _, i := range []int{-1, 3, 100} {
		_, err := v.At(i)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.ErrorIs(t, v.Set(i, 0), ErrOutOfRange)
		assert.Panics(t, func() { v.Ptr(i) })
	}

	require.NoError(t, v.Set(0, 11))
	*v.Ptr(2) = 33
	front, ok := v.PeekFront()
	assert.True(t, ok)
	assert.Equal(t, 11, front)
	back, ok := v.PeekBack()
	assert.True(t, ok)
	assert.Equal(t, 33, back)

	empty := MakeVector[int]()
	_, ok = empty.PeekFront()
	assert.False(t, ok)
	_, ok = empty.PeekBack()
	assert.False(t, ok)
	_, ok = empty.PopBack()
	assert.False(t, ok)
}

func TestInsert(t *testing.T) {
	for _, tc := range []struct {
		name    string
		reserve int
		pos     int
		ins     []int
		want    []int
	}{
		{"front", 0, 0, []int{-1}, []int{-1, 1, 2, 3}},
		{"middle", 0, 1, []int{-1, -2}, []int{1, -1, -2, 2, 3}},
		{"back", 0, 3, []int{-1}, []int{1, 2, 3, -1}},
		{"front in place", 8, 0, []int{-1, -2}, []int{-1, -2, 1, 2, 3}},
		{"middle in place", 8, 2, []int{-1, -2, -3, -4}, []int{1, 2, -1, -2, -3, -4, 3}},
		{"back in place", 8, 3, []int{-1}, []int{1, 2, 3, -1}},
		{"nothing", 0, 1, nil, []int{1, 2, 3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := mustCopy(t, []int{1, 2, 3})
			require.NoError(t, v.Reserve(tc.reserve))
			require.NoError(t, v.InsertSlice(tc.pos, tc.ins))
			assert.Equal(t, tc.want, v.Data())
			checkInvariants(t, v)
		})
	}
}

func TestInsertForms(t *testing.T) {
	v := MakeVector[int]()
	require.NoError(t, v.Insert(0, 2))
	require.NoError(t, v.InsertN(0, 2, 1))
	require.NoError(t, v.InsertSeq(3, slices.Values([]int{3, 4})))
	require.NoError(t, v.Emplace(1, func(p *int) error { *p = 9; return nil }))
	require.NoError(t, v.EmplaceBack(func(p *int) error { *p = 5; return nil }))
	assert.Equal(t, []int{1, 9, 1, 2, 3, 4, 5}, v.Data())

	assert.ErrorIs(t, v.Insert(-1, 0), ErrOutOfRange)
	assert.ErrorIs(t, v.Insert(8, 0), ErrOutOfRange)
	assert.ErrorIs(t, v.InsertN(0, -2, 0), ErrNegativeCount)
	assert.ErrorIs(t, v.InsertSeq(99, slices.Values([]int{1})), ErrOutOfRange)
	assert.Equal(t, 7, v.Len())
}

func TestEmplaceFailure(t *testing.T) {
	v := mustCopy(t, []int{1, 2})
	boom := errors.New("boom")
	err := v.EmplaceBack(func(p *int) error { *p = 7; return boom })
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, memory.ErrConstruction)
	assert.Equal(t, []int{1, 2}, v.Data())
	checkInvariants(t, v)
}

func TestInsertEraseRoundTrip(t *testing.T) {
	orig := []int{1, 2, 3, 4, 5}
	for pos := 0; pos <= len(orig); pos++ {
		v := mustCopy(t, orig)
		require.NoError(t, v.Insert(pos, 42))
		require.NoError(t, v.Erase(pos))
		assert.Equal(t, orig, v.Data())
		checkInvariants(t, v)
	}
}

func TestEraseErrors(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3})
	assert.ErrorIs(t, v.Erase(3), ErrOutOfRange)
	assert.ErrorIs(t, v.EraseRange(2, 1), ErrOutOfRange)
	assert.ErrorIs(t, v.EraseRange(0, 4), ErrOutOfRange)
	require.NoError(t, v.EraseRange(1, 1))
	assert.Equal(t, []int{1, 2, 3}, v.Data())
}

func TestClearTwice(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3})
	v.Clear()
	assert.Zero(t, v.Len())
	v.Clear()
	assert.Zero(t, v.Len())
	assert.Equal(t, 3, v.Cap())
	checkInvariants(t, v)
}

func TestResizeAndShrink(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3})
	require.NoError(t, v.ResizeFill(5, 7))
	assert.Equal(t, []int{1, 2, 3, 7, 7}, v.Data())
	require.NoError(t, v.Resize(2))
	assert.Equal(t, []int{1, 2}, v.Data())
	assert.ErrorIs(t, v.Resize(-1), ErrNegativeCount)

	require.NoError(t, v.ShrinkToFit())
	assert.Equal(t, 2, v.Cap())
	v.Clear()
	require.NoError(t, v.ShrinkToFit())
	assert.Zero(t, v.Cap())
	checkInvariants(t, v)
}

func TestReserve(t *testing.T) {
	v := mustCopy(t, []int{1, 2})
	require.NoError(t, v.Reserve(10))
	assert.Equal(t, 10, v.Cap())
	require.NoError(t, v.Reserve(4))
	assert.Equal(t, 10, v.Cap())
	assert.Equal(t, []int{1, 2}, v.Data())

	err := v.Reserve(v.Allocator().MaxSize() + 1)
	assert.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Equal(t, 10, v.Cap())
}

func TestPopAndDrop(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3, 4})
	got, ok := v.PopBack()
	assert.True(t, ok)
	assert.Equal(t, 4, got)
	v.DropBack(-1)
	assert.Equal(t, 3, v.Len())
	v.DropBack(2)
	assert.Equal(t, []int{1}, v.Data())
	v.DropBack(10)
	assert.True(t, v.Empty())
	checkInvariants(t, v)
}

func TestAssignCloneSwap(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3})
	require.NoError(t, v.Assign(2, 9))
	assert.Equal(t, []int{9, 9}, v.Data())
	require.NoError(t, v.AssignSlice([]int{4, 5, 6, 7}))
	assert.Equal(t, []int{4, 5, 6, 7}, v.Data())

	c, err := v.Clone()
	require.NoError(t, err)
	assert.True(t, Equal(v, c))
	c.SetUnsafe(0, 0)
	assert.Equal(t, 4, v.AtUnsafe(0))

	v.Swap(0, 3)
	assert.Equal(t, []int{7, 5, 6, 4}, v.Data())
	assert.Panics(t, func() { v.Swap(0, 4) })

	o := mustCopy(t, []int{8})
	v.SwapContents(o)
	assert.Equal(t, []int{8}, v.Data())
	assert.Equal(t, []int{7, 5, 6, 4}, o.Data())
}

func TestComparisons(t *testing.T) {
	a := mustCopy(t, []int{1, 2, 3})
	b := mustCopy(t, []int{1, 2, 4})

	assert.False(t, Equal(a, b))
	assert.True(t, Equal[int](nil, nil))
	assert.False(t, Equal(a, nil))
	assert.True(t, a.EqualFunc(b, func(x, y int) bool { return x <= y }))
	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 2, Index(b, 4))
	assert.Equal(t, -1, Index(a, 4))
	assert.True(t, Contains(a, 3))
	assert.Equal(t, 1, a.IndexFunc(func(x int) bool { return x%2 == 0 }))
}

func TestIteration(t *testing.T) {
	v := mustCopy(t, []int{1, 2, 3})
	var idx, vals []int
	for i, x := range v.All() {
		idx = append(idx, i)
		vals = append(vals, x)
	}
	assert.Equal(t, []int{0, 1, 2}, idx)
	assert.Equal(t, []int{1, 2, 3}, vals)
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(v.Iter()))

	var back []int
	for _, x := range v.RIter() {
		back = append(back, x)
	}
	assert.Equal(t, []int{3, 2, 1}, back)
}

func TestTrackedLifecycle(t *testing.T) {
	reg := testutil.NewRegistry(t)

	v, err := CopySliceToVector(reg.MakeAll(1, 2, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Live())

	require.NoError(t, v.PushBack(reg.Make(4)))
	require.NoError(t, v.Erase(0))
	assert.Equal(t, 3, reg.Live())

	require.NoError(t, v.Resize(5))
	assert.Equal(t, 5, reg.Live())

	// popping hands ownership to the caller
	popped, ok := v.PopBack()
	require.True(t, ok)
	assert.Equal(t, 5, reg.Live())
	popped.Destroy()
	assert.Equal(t, 4, reg.Live())

	require.NoError(t, v.Set(0, reg.Make(20)))
	assert.Equal(t, []int{20, 3, 4, 0}, testutil.Ints(v.Iter()))
	assert.Equal(t, 4, reg.Live())

	v.Release()
	assert.Zero(t, reg.Live())
	assert.Zero(t, reg.DoubleDestroys())
}

func TestPushBackFailureAtCapacity(t *testing.T) {
	reg := testutil.NewRegistry(t)
	v, err := CopySliceToVector(reg.MakeAll(1, 2, 3))
	require.NoError(t, err)
	require.Equal(t, v.Len(), v.Cap())
	before := v.storage

	reg.FailAfter(1)
	err = v.PushBack(reg.Make(4))
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.ErrorIs(t, err, memory.ErrConstruction)

	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 3, v.Cap())
	assert.Same(t, &before[0], &v.storage[0])
	assert.Equal(t, []int{1, 2, 3}, testutil.Ints(v.Iter()))
	assert.Equal(t, 3, reg.Live())
}

func TestInsertFailureRollsBack(t *testing.T) {
	for _, reserve := range []int{0, 16} {
		reg := testutil.NewRegistry(t)
		v, err := CopySliceToVector(reg.MakeAll(1, 2, 3, 4))
		require.NoError(t, err)
		require.NoError(t, v.Reserve(reserve))
		capBefore := v.Cap()

		reg.FailAfter(3)
		err = v.InsertSlice(1, reg.MakeAll(7, 8, 9))
		var ce *memory.ConstructionError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, 2, ce.Index)
		assert.Equal(t, 2, ce.TornDown)

		assert.Equal(t, []int{1, 2, 3, 4}, testutil.Ints(v.Iter()))
		assert.Equal(t, capBefore, v.Cap())
		assert.Equal(t, 4, reg.Live())
		assert.Zero(t, reg.DoubleDestroys())
	}
}

func TestAssignFailureKeepsContents(t *testing.T) {
	reg := testutil.NewRegistry(t)
	v, err := CopySliceToVector(reg.MakeAll(1, 2))
	require.NoError(t, err)

	reg.FailAfter(2)
	require.Error(t, v.Assign(3, reg.Make(5)))
	assert.Equal(t, []int{1, 2}, testutil.Ints(v.Iter()))
	assert.Equal(t, 2, reg.Live())
}

func TestAllocationFailure(t *testing.T) {
	res := testutil.NewFailingResource(2)
	v := MakeVectorWithAllocator(memory.New[int](res))
	require.NoError(t, v.PushBack(1))

	err := v.PushBack(2)
	require.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Equal(t, []int{1}, v.Data())
	assert.Equal(t, 1, v.Cap())

	require.NoError(t, v.PushBack(2))
	v.Release()
	assert.Zero(t, res.Stats().InUse)
}

func TestLimitedResource(t *testing.T) {
	size := memory.SizeOf[int]()
	res := memory.NewLimited(4 * size)
	v := MakeVectorWithAllocator(memory.New[int](res))
	require.NoError(t, v.Reserve(4))
	for i := range 4 {
		require.NoError(t, v.PushBack(i))
	}
	assert.Equal(t, 4*size, res.Stats().InUse)

	assert.ErrorIs(t, v.PushBack(4), memory.ErrOutOfMemory)
	assert.Equal(t, []int{0, 1, 2, 3}, v.Data())
	v.Release()
	assert.Zero(t, res.Stats().InUse)
}

func TestRandomOpsMatchSlice(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	v := MakeVector[int]()
	var model []int

	for step := range 2000 {
		switch op := rng.IntN(6); {
		case op == 0:
			require.NoError(t, v.PushBack(step))
			model = append(model, step)
		case op == 1 && len(model) > 0:
			got, _ := v.PopBack()
			require.Equal(t, model[len(model)-1], got)
			model = model[:len(model)-1]
		case op == 2:
			pos, n := rng.IntN(len(model)+1), rng.IntN(4)
			require.NoError(t, v.InsertN(pos, n, step))
			model = slices.Insert(model, pos, slices.Repeat([]int{step}, n)...)
		case op == 3 && len(model) > 0:
			first := rng.IntN(len(model))
			last := first + rng.IntN(len(model)-first+1)
			require.NoError(t, v.EraseRange(first, last))
			model = slices.Delete(model, first, last)
		case op == 4:
			n := rng.IntN(len(model) + 3)
			require.NoError(t, v.Resize(n))
			if n < len(model) {
				model = model[:n]
			} else {
				model = append(model, make([]int, n-len(model))...)
			}
		case op == 5 && rng.IntN(10) == 0:
			require.NoError(t, v.ShrinkToFit())
		}
		if diff := cmp.Diff(model, v.Data(), cmp.Comparer(func(a, b []int) bool {
			return slices.Equal(a, b)
		})); diff != "" {
			t.Fatalf("step %d: mismatch (-want +got):\n%s", step, diff)
		}
		checkInvariants(t, v)
	}
}

func BenchmarkPushBack(b *testing.B) {
	for b.Loop() {
		v := MakeVector[int]()
		for i := range 1024 {
			_ = v.PushBack(i)
		}
	}
}

func TestNilVector(t *testing.T) {
	var v *Vector[int]
	assert.Zero(t, v.Len())
	assert.Zero(t, v.Cap())
	assert.True(t, v.Empty())
}
