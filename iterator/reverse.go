package iterator

// BidirectionalReader is a readable iterator that can step both ways, the
// minimum Reverse needs from its base.
type BidirectionalReader[T, I any] interface {
	BidirectionalIterator[I]
	Value() T
}

// Reverse walks a bidirectional range backwards. A Reverse built from base
// refers to the element just before base, so MakeReverse(end) is the first
// element of the reversed range and MakeReverse(begin) is its end.
type Reverse[T any, I BidirectionalReader[T, I]] struct {
	base I
}

// MakeReverse adapts base.
func MakeReverse[T any, I BidirectionalReader[T, I]](base I) Reverse[T, I] {
	return Reverse[T, I]{base: base}
}

// Base returns the underlying iterator.
func (r Reverse[T, I]) Base() I { return r.base }

func (r Reverse[T, I]) Category() Category { return r.base.Category() }

func (r Reverse[T, I]) Next() Reverse[T, I] { return Reverse[T, I]{r.base.Prev()} }

func (r Reverse[T, I]) Prev() Reverse[T, I] { return Reverse[T, I]{r.base.Next()} }

func (r Reverse[T, I]) Equal(o Reverse[T, I]) bool { return r.base.Equal(o.base) }

func (r Reverse[T, I]) Value() T { return r.base.Prev().Value() }

// Add moves n positions along the reversed range. It panics if the base is
// not random-access.
func (r Reverse[T, I]) Add(n int) Reverse[T, I] {
	return Reverse[T, I]{r.randomAccess().Add(-n)}
}

// Diff returns the distance from o to r along the reversed range.
func (r Reverse[T, I]) Diff(o Reverse[T, I]) int {
	return any(o.base).(interface{ Diff(I) int }).Diff(r.base)
}

func (r Reverse[T, I]) randomAccess() interface{ Add(int) I } {
	ra, ok := any(r.base).(interface{ Add(int) I })
	if !ok || r.base.Category() < RandomAccess {
		panic("iterator: reverse base is not random-access")
	}
	return ra
}
