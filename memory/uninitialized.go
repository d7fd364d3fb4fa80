package memory

import "github.com/cockroachdb/errors"

// rollback destroys the first k slots of dst and reports the failure at k.
func rollback[T any](a Allocator[T], dst []T, k int, cause error) error {
	Destroy(a, dst[:k])
	return &ConstructionError{Index: k, TornDown: k, Cause: cause}
}

// UninitializedCopy copy-constructs src into the unconstructed prefix of dst
// and returns len(src). dst must be at least as long as src.
func UninitializedCopy[T any](a Allocator[T], dst, src []T) (int, error) {
	if len(dst) < len(src) {
		panic("memory: UninitializedCopy destination shorter than source")
	}
	for i := range src {
		if err := a.Construct(&dst[i], src[i]); err != nil {
			return 0, rollback(a, dst, i, err)
		}
	}
	return len(src), nil
}

// UninitializedCopyFrom copy-constructs every slot of dst from successive
// calls to next.
func UninitializedCopyFrom[T any](a Allocator[T], dst []T, next func() T) error {
	for i := range dst {
		if err := a.Construct(&dst[i], next()); err != nil {
			return rollback(a, dst, i, err)
		}
	}
	return nil
}

// UninitializedMove relocates src into the unconstructed prefix of dst,
// leaving src unconstructed, and returns len(src). It never fails and runs no
// hooks. The ranges must not overlap.
func UninitializedMove[T any](dst, src []T) int {
	n := copy(dst, src)
	if n < len(src) {
		panic("memory: UninitializedMove destination shorter than source")
	}
	clear(src)
	return n
}

// UninitializedFill constructs a copy of v in every slot of dst.
func UninitializedFill[T any](a Allocator[T], dst []T, v T) error {
	for i := range dst {
		if err := a.Construct(&dst[i], v); err != nil {
			return rollback(a, dst, i, err)
		}
	}
	return nil
}

// UninitializedDefault default-constructs every slot of dst.
func UninitializedDefault[T any](a Allocator[T], dst []T) error {
	for i := range dst {
		if err := a.ConstructDefault(&dst[i]); err != nil {
			return rollback(a, dst, i, err)
		}
	}
	return nil
}

// Destroy destroys every element of s in order.
func Destroy[T any](a Allocator[T], s []T) {
	for i := range s {
		a.Destroy(&s[i])
	}
}

// ConstructSegments runs construct on each segment of a segmented
// destination in order. construct must itself be all-or-nothing for its
// segment. When it fails, every segment completed before it is destroyed and
// the returned ConstructionError counts slots from the first segment.
func ConstructSegments[T any](a Allocator[T], segs [][]T, construct func(seg []T) error) error {
	done := 0
	for k, seg := range segs {
		err := construct(seg)
		if err == nil {
			done += len(seg)
			continue
		}
		for _, prev := range segs[:k] {
			Destroy(a, prev)
		}
		var ce *ConstructionError
		if errors.As(err, &ce) {
			return &ConstructionError{Index: done + ce.Index, TornDown: done + ce.TornDown, Cause: ce.Cause}
		}
		return &ConstructionError{Index: done, TornDown: done, Cause: err}
	}
	return nil
}
