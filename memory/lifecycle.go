package memory

// Cloner is implemented by element types whose copies need more than plain
// assignment. Clone runs whenever an element is copy-constructed.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Initializer is implemented by *T for element types whose default state is
// not the zero value.
type Initializer interface {
	Init() error
}

// Destroyer is implemented by *T for element types that own resources.
type Destroyer interface {
	Destroy()
}

func clone[T any](v T) (T, error) {
	if c, ok := any(v).(Cloner[T]); ok {
		out, err := c.Clone()
		return out, constructionFailure(err)
	}
	return v, nil
}

func initialize[T any](p *T) error {
	var zero T
	*p = zero
	if in, ok := any(p).(Initializer); ok {
		if err := in.Init(); err != nil {
			*p = zero
			return constructionFailure(err)
		}
	}
	return nil
}

func destroy[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
}

// Emplace constructs *p in place by running init on a zeroed slot. If init
// fails the slot is zeroed again and the error is marked with
// ErrConstruction.
func Emplace[T any](p *T, init func(*T) error) error {
	var zero T
	*p = zero
	if init == nil {
		return nil
	}
	if err := init(p); err != nil {
		*p = zero
		return constructionFailure(err)
	}
	return nil
}
