package memory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasgdosr/stl/internal/testutil"
	"github.com/lucasgdosr/stl/memory"
)

type pair struct{ a, b int64 }

type defaulted struct{ n int }

func (d *defaulted) Init() error {
	d.n = 7
	return nil
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 8, memory.SizeOf[int64]())
	assert.Equal(t, 16, memory.SizeOf[pair]())
	assert.Equal(t, 1, memory.SizeOf[struct{}]())
}

func TestStandardAccounting(t *testing.T) {
	h := memory.NewHeap()
	a := memory.New[pair](h)
	assert.Same(t, h, a.Resource())
	assert.Equal(t, math.MaxInt/16, a.MaxSize())

	p, err := a.Allocate(4)
	require.NoError(t, err)
	require.Len(t, p, 4)
	q, err := a.Allocate(2)
	require.NoError(t, err)
	assert.Equal(t, memory.Stats{Allocs: 2, InUse: 96, Peak: 96}, h.Stats())

	a.Deallocate(p)
	assert.Equal(t, memory.Stats{Allocs: 2, Frees: 1, InUse: 32, Peak: 96}, h.Stats())
	a.Deallocate(q)
	assert.Zero(t, h.Stats().InUse)

	empty, err := a.Allocate(0)
	require.NoError(t, err)
	assert.Nil(t, empty)
	assert.Equal(t, 2, h.Stats().Allocs)
}

func TestAllocateTooMuch(t *testing.T) {
	a := memory.New[pair](nil)
	_, err := a.Allocate(a.MaxSize() + 1)
	assert.ErrorIs(t, err, memory.ErrOutOfMemory)
	_, err = a.Allocate(-1)
	assert.ErrorIs(t, err, memory.ErrOutOfMemory)
}

func TestLimited(t *testing.T) {
	l := memory.NewLimited(64)
	assert.Equal(t, 64, l.Limit())
	a := memory.New[int64](l)

	p, err := a.Allocate(6)
	require.NoError(t, err)
	_, err = a.Allocate(3)
	require.ErrorIs(t, err, memory.ErrOutOfMemory)
	assert.Equal(t, 48, l.Stats().InUse)

	q, err := a.Allocate(2)
	require.NoError(t, err)
	a.Deallocate(p)
	a.Deallocate(q)
	assert.Equal(t, memory.Stats{Allocs: 2, Frees: 2, Peak: 64}, l.Stats())
}

func TestRebindSharesResource(t *testing.T) {
	h := memory.NewHeap()
	a := memory.New[int64](h)
	b := memory.Rebind[pair](a)

	_, err := a.Allocate(1)
	require.NoError(t, err)
	_, err = b.Allocate(1)
	require.NoError(t, err)
	assert.Equal(t, 24, h.Stats().InUse)
}

func TestLifecycleHooks(t *testing.T) {
	reg := testutil.NewRegistry(t)
	a := memory.New[testutil.Tracked](nil)

	var slot testutil.Tracked
	require.NoError(t, a.Construct(&slot, reg.Make(3)))
	assert.Equal(t, 3, slot.V)
	assert.Equal(t, 1, reg.Live())
	a.Destroy(&slot)
	assert.Zero(t, reg.Live())
	assert.Equal(t, testutil.Tracked{}, slot)

	require.NoError(t, a.ConstructDefault(&slot))
	assert.Equal(t, 1, reg.Live())
	a.Destroy(&slot)

	reg.FailAfter(1)
	err := a.Construct(&slot, reg.Make(4))
	require.ErrorIs(t, err, memory.ErrConstruction)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Zero(t, reg.Live())
	assert.Zero(t, reg.DoubleDestroys())
}

func TestConstructDefaultRunsInit(t *testing.T) {
	a := memory.New[defaulted](nil)
	d := defaulted{n: 1}
	require.NoError(t, a.ConstructDefault(&d))
	assert.Equal(t, 7, d.n)
}

func TestEmplace(t *testing.T) {
	p := 5
	require.NoError(t, memory.Emplace(&p, nil))
	assert.Zero(t, p)

	require.NoError(t, memory.Emplace(&p, func(v *int) error {
		*v = 9
		return nil
	}))
	assert.Equal(t, 9, p)

	err := memory.Emplace(&p, func(v *int) error {
		*v = 1
		return testutil.ErrInjected
	})
	require.ErrorIs(t, err, memory.ErrConstruction)
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Zero(t, p)
}
