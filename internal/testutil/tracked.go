// Package testutil holds element types and resources that let container
// tests observe construction, destruction and allocation failures.
package testutil

import (
	"iter"
	"testing"

	"github.com/cockroachdb/errors"
)

// ErrInjected is the cause of every failure injected by a Registry.
var ErrInjected = errors.New("testutil: injected construction failure")

// Registry counts the Tracked elements constructed through it.
type Registry struct {
	live     int
	clones   int
	inits    int
	destroys int
	double   int

	failAt int
	calls  int
}

var active *Registry

// NewRegistry returns a Registry that also receives default-constructed
// Tracked values until the test ends.
func NewRegistry(tb testing.TB) *Registry {
	r := &Registry{}
	prev := active
	active = r
	tb.Cleanup(func() { active = prev })
	return r
}

// Make returns a Tracked value owned by the caller. It is not counted as live
// until a container copy-constructs it.
func (r *Registry) Make(v int) Tracked { return Tracked{V: v, reg: r} }

// MakeAll returns Make(v) for each v.
func (r *Registry) MakeAll(vs ...int) []Tracked {
	out := make([]Tracked, len(vs))
	for i, v := range vs {
		out[i] = r.Make(v)
	}
	return out
}

// FailAfter makes the n-th construction from now on fail. n <= 0 disables
// injection.
func (r *Registry) FailAfter(n int) {
	r.calls = 0
	r.failAt = n
}

// Live is the number of constructed, not yet destroyed elements.
func (r *Registry) Live() int { return r.live }

// Clones is the number of successful copy constructions.
func (r *Registry) Clones() int { return r.clones }

// Destroys is the number of destructions.
func (r *Registry) Destroys() int { return r.destroys }

// DoubleDestroys counts destructions of elements that were not live.
func (r *Registry) DoubleDestroys() int { return r.double }

func (r *Registry) construct() error {
	if r.failAt > 0 {
		r.calls++
		if r.calls == r.failAt {
			r.failAt = 0
			return errors.Wrapf(ErrInjected, "construction #%d", r.calls)
		}
	}
	r.live++
	return nil
}

// Tracked is an element type whose copies, default constructions and
// destructions are counted by its Registry.
type Tracked struct {
	V   int
	reg *Registry
}

// Clone implements memory.Cloner.
func (t Tracked) Clone() (Tracked, error) {
	if t.reg == nil {
		return t, nil
	}
	if err := t.reg.construct(); err != nil {
		return Tracked{}, err
	}
	t.reg.clones++
	return t, nil
}

// Init implements memory.Initializer.
func (t *Tracked) Init() error {
	if active == nil {
		return nil
	}
	if err := active.construct(); err != nil {
		return err
	}
	active.inits++
	t.reg = active
	return nil
}

// Destroy implements memory.Destroyer.
func (t *Tracked) Destroy() {
	if t.reg == nil {
		return
	}
	t.reg.destroys++
	if t.reg.live == 0 {
		t.reg.double++
		return
	}
	t.reg.live--
}

// Ints collects the V field of every element of seq.
func Ints(seq iter.Seq[Tracked]) []int {
	var out []int
	for t := range seq {
		out = append(out, t.V)
	}
	return out
}
