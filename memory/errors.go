package memory

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfMemory is returned when a resource refuses an acquisition or a
	// requested element count exceeds MaxSize.
	ErrOutOfMemory = errors.New("memory: out of memory")

	// ErrConstruction marks errors raised by an element's Clone, Init or
	// emplace function.
	ErrConstruction = errors.New("memory: element construction failed")
)

// ConstructionError is the result of a failed bulk construction. Index is
// the position of the slot whose construction failed and TornDown is the
// number of slots that had been constructed and were destroyed again before
// the error was returned. Both count from the start of the whole
// destination, across segments.
type ConstructionError struct {
	Index    int
	TornDown int
	Cause    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("memory: construction failed at slot %d (%d torn down): %v",
		e.Index, e.TornDown, e.Cause)
}

// Unwrap returns the error raised by the element.
func (e *ConstructionError) Unwrap() error { return e.Cause }

// Is reports ErrConstruction as a match.
func (e *ConstructionError) Is(target error) bool { return target == ErrConstruction }

// constructionFailure marks err so errors.Is(err, ErrConstruction) holds while
// the original error stays reachable.
func constructionFailure(err error) error {
	if err == nil {
		return nil
	}
	return &constructionFailed{cause: err}
}

type constructionFailed struct {
	cause error
}

func (e *constructionFailed) Error() string { return e.cause.Error() }

func (e *constructionFailed) Unwrap() error { return e.cause }

func (e *constructionFailed) Is(target error) bool { return target == ErrConstruction }
