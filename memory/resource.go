package memory

import "github.com/cockroachdb/errors"

// Resource is the untyped source of memory behind one or more allocators.
// Allocators of different element types that share a Resource share its
// accounting.
type Resource interface {
	// Acquire reserves bytes or fails with an error wrapping ErrOutOfMemory.
	Acquire(bytes int) error
	// Release returns bytes previously acquired.
	Release(bytes int)
}

// Stats summarizes the activity of a resource, in bytes.
type Stats struct {
	Allocs int // successful acquisitions
	Frees  int // releases
	InUse  int // bytes currently held
	Peak   int // high-water mark of InUse
}

// StatsReporter is implemented by resources that keep Stats.
type StatsReporter interface {
	Stats() Stats
}

// Heap is an unlimited Resource backed by the Go heap. The zero value is
// ready to use.
type Heap struct {
	stats Stats
}

// NewHeap returns an empty Heap.
func NewHeap() *Heap { return &Heap{} }

// Acquire records an allocation of bytes. It fails only for negative sizes.
func (h *Heap) Acquire(bytes int) error {
	if bytes < 0 {
		return errors.Wrapf(ErrOutOfMemory, "negative acquisition of %d bytes", bytes)
	}
	h.record(bytes)
	return nil
}

func (h *Heap) record(bytes int) {
	h.stats.Allocs++
	h.stats.InUse += bytes
	h.stats.Peak = max(h.stats.Peak, h.stats.InUse)
}

// Release records that bytes were returned.
func (h *Heap) Release(bytes int) {
	h.stats.Frees++
	h.stats.InUse -= bytes
}

// Stats returns a snapshot of the accounting.
func (h *Heap) Stats() Stats { return h.stats }

// Limited is a Heap that refuses to hold more than a fixed number of bytes.
type Limited struct {
	Heap
	limit int
}

// NewLimited returns a resource that fails any acquisition that would push
// the bytes in use above limit.
func NewLimited(limit int) *Limited {
	return &Limited{limit: limit}
}

// Acquire fails with ErrOutOfMemory when bytes do not fit under the limit.
// A refused acquisition leaves the accounting untouched.
func (l *Limited) Acquire(bytes int) error {
	if bytes < 0 {
		return errors.Wrapf(ErrOutOfMemory, "negative acquisition of %d bytes", bytes)
	}
	if l.stats.InUse+bytes > l.limit {
		return errors.Wrapf(ErrOutOfMemory, "acquiring %d bytes with %d of %d in use",
			bytes, l.stats.InUse, l.limit)
	}
	l.record(bytes)
	return nil
}

// Limit returns the configured byte limit.
func (l *Limited) Limit() int { return l.limit }
