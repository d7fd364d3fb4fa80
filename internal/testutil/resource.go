package testutil

import (
	"github.com/cockroachdb/errors"

	"github.com/lucasgdosr/stl/memory"
)

// FailingResource is a memory.Heap whose n-th acquisition fails.
type FailingResource struct {
	memory.Heap
	failAt int
	calls  int
}

// NewFailingResource returns a resource that refuses its n-th acquisition.
// n <= 0 never fails.
func NewFailingResource(n int) *FailingResource {
	return &FailingResource{failAt: n}
}

// FailAfter rearms the resource so the n-th acquisition from now fails.
func (f *FailingResource) FailAfter(n int) {
	f.calls = 0
	f.failAt = n
}

// Acquire implements memory.Resource.
func (f *FailingResource) Acquire(bytes int) error {
	if f.failAt > 0 {
		f.calls++
		if f.calls == f.failAt {
			f.failAt = 0
			return errors.Wrapf(memory.ErrOutOfMemory, "injected failure acquiring %d bytes", bytes)
		}
	}
	return f.Heap.Acquire(bytes)
}
