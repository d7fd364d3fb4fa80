package memory

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Allocator acquires and releases storage for elements of type T and
// constructs and destroys elements in that storage. Containers route every
// allocation and every element lifecycle event through their Allocator.
type Allocator[T any] interface {
	// Allocate returns n unconstructed slots.
	Allocate(n int) ([]T, error)
	// Deallocate releases a block obtained from Allocate. Every slot must be
	// unconstructed.
	Deallocate(p []T)
	// Construct copy-constructs v into the unconstructed slot p.
	Construct(p *T, v T) error
	// ConstructDefault default-constructs the unconstructed slot p.
	ConstructDefault(p *T) error
	// Destroy destroys the element at p, leaving the slot unconstructed.
	Destroy(p *T)
	// MaxSize is the largest n Allocate can ever satisfy.
	MaxSize() int
}

// ResourceHolder is implemented by allocators that draw from a Resource.
type ResourceHolder interface {
	Resource() Resource
}

// Standard is the Allocator used by default. It accounts every block with
// its Resource and delegates element lifecycle to the element's hooks.
type Standard[T any] struct {
	res Resource
}

var _ Allocator[int] = (*Standard[int])(nil)

// New returns a Standard allocator drawing from r. A nil r gets a fresh Heap.
func New[T any](r Resource) *Standard[T] {
	if r == nil {
		r = NewHeap()
	}
	return &Standard[T]{res: r}
}

// Rebind returns an allocator for U that draws from the same Resource as a.
// Allocators that do not expose their resource are rebound onto a fresh Heap.
func Rebind[U, T any](a Allocator[T]) Allocator[U] {
	if rh, ok := a.(ResourceHolder); ok {
		return New[U](rh.Resource())
	}
	return New[U](nil)
}

// SizeOf returns the number of bytes accounted per element of T. Zero-sized
// types are accounted as one byte so that limits still apply to them.
func SizeOf[T any]() int {
	var zero T
	return max(1, int(unsafe.Sizeof(zero)))
}

// Resource returns the resource backing a.
func (a *Standard[T]) Resource() Resource { return a.res }

// Allocate acquires n*SizeOf[T]() bytes from the resource.
func (a *Standard[T]) Allocate(n int) ([]T, error) {
	if n < 0 || n > a.MaxSize() {
		return nil, errors.Wrapf(ErrOutOfMemory, "cannot allocate %d elements (max %d)", n, a.MaxSize())
	}
	if n == 0 {
		return nil, nil
	}
	if err := a.res.Acquire(n * SizeOf[T]()); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// Deallocate releases p and zeroes it.
func (a *Standard[T]) Deallocate(p []T) {
	if len(p) == 0 {
		return
	}
	clear(p)
	a.res.Release(len(p) * SizeOf[T]())
}

// Construct stores a copy of v in p, running v's Clone hook if it has one.
func (a *Standard[T]) Construct(p *T, v T) error {
	c, err := clone(v)
	if err != nil {
		return err
	}
	*p = c
	return nil
}

// ConstructDefault zeroes p and runs its Init hook if it has one.
func (a *Standard[T]) ConstructDefault(p *T) error { return initialize(p) }

// Destroy runs p's Destroy hook if it has one and zeroes p.
func (a *Standard[T]) Destroy(p *T) { destroy(p) }

// MaxSize returns the largest element count whose byte size fits in an int.
func (a *Standard[T]) MaxSize() int { return math.MaxInt / SizeOf[T]() }
