package animation

import (
	"fmt"

	"github.com/ProjectLiminality/dreamtalk/scene"
)

// Animator is a fluent builder for chained parameter animations on one
// node. Each call appends an animation and writes the target value to the
// live parameter; errors are deferred to Build so chains stay readable.
type Animator struct {
	target  *scene.Node
	members []Animation
	err     error
}

// For starts an animation chain on the given node.
func For(target *scene.Node) *Animator {
	return &Animator{target: target}
}

// To animates a parameter to a single value.
func (a *Animator) To(parameter string, value float64) *Animator {
	if a.err != nil {
		return a
	}

	current, ok := a.target.Parameter(parameter)
	if !ok {
		a.err = fmt.Errorf("%w: %q on %q", ErrUnknownParameter, parameter, a.target.Name())

		return a
	}

	a.members = append(a.members, NewScalar(a.target, parameter, current, value))
	a.target.SetParameter(parameter, value)

	return a
}

// Through animates a parameter through a sequence of values over equal
// sub-ranges.
func (a *Animator) Through(parameter string, values ...float64) *Animator {
	if a.err != nil {
		return a
	}

	group, err := Sequence(a.target, parameter, values...)
	if err != nil {
		a.err = err

		return a
	}

	a.members = append(a.members, group)

	return a
}

// Build returns the composed animation: nil for an empty chain, the single
// member for one, a group otherwise.
func (a *Animator) Build() (Animation, error) {
	if a.err != nil {
		return nil, a.err
	}

	return Compose(a.members), nil
}
