// Package animation builds the animation objects a state transition or a
// fluent animator chain hands to the external player. Windows are expressed
// in normalized time over one unit of total duration; the player scales them
// to its own run time.
package animation

import (
	"errors"
	"fmt"

	"github.com/ProjectLiminality/dreamtalk/scene"
)

// ErrUnknownParameter indicates an animation addressed a parameter the
// target node does not declare.
var ErrUnknownParameter = errors.New("unknown animation parameter")

// Animation is a schedulable unit for the external player.
type Animation interface {
	// Window returns the normalized [start, stop] interval within the total
	// run time this animation occupies.
	Window() (start, stop float64)
}

// ScalarAnimation animates one named parameter of a node from one value to
// another. The live value is written when the animation is built, so the
// scene reflects the final state even before playback.
type ScalarAnimation struct {
	Target    *scene.Node
	Parameter string
	From      float64
	To        float64
	RelStart  float64
	RelStop   float64
}

// NewScalar builds a full-window scalar animation.
func NewScalar(target *scene.Node, parameter string, from, to float64) *ScalarAnimation {
	return &ScalarAnimation{
		Target:    target,
		Parameter: parameter,
		From:      from,
		To:        to,
		RelStart:  0,
		RelStop:   1,
	}
}

// Window implements Animation.
func (a *ScalarAnimation) Window() (float64, float64) {
	return a.RelStart, a.RelStop
}

// ValueAt interpolates linearly within the animation's own window. Times
// outside the window clamp to the endpoints.
func (a *ScalarAnimation) ValueAt(t float64) float64 {
	if a.RelStop <= a.RelStart || t <= a.RelStart {
		return a.From
	}

	if t >= a.RelStop {
		return a.To
	}

	frac := (t - a.RelStart) / (a.RelStop - a.RelStart)

	return a.From + (a.To-a.From)*frac
}

// Group composes several animations played over the same run time.
type Group struct {
	Members []Animation
}

// NewGroup creates a group from its members.
func NewGroup(members ...Animation) *Group {
	return &Group{Members: members}
}

// Window implements Animation: the union of the members' windows, or the
// full unit window for an empty group.
func (g *Group) Window() (float64, float64) {
	if len(g.Members) == 0 {
		return 0, 1
	}

	start, stop := g.Members[0].Window()
	for _, m := range g.Members[1:] {
		s, e := m.Window()
		if s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}

	return start, stop
}

// Compose collapses a member list the way transitions return animations:
// nil for none, the member itself for one, a group otherwise.
func Compose(members []Animation) Animation {
	switch len(members) {
	case 0:
		return nil
	case 1:
		return members[0]
	default:
		return NewGroup(members...)
	}
}

// Sequence animates one parameter through each value in order, giving every
// value an equal sub-range of the total duration: value i plays over
// [i/n, (i+1)/n]. The final value is written to the live parameter.
func Sequence(target *scene.Node, parameter string, values ...float64) (*Group, error) {
	current, ok := target.Parameter(parameter)
	if !ok {
		return nil, fmt.Errorf("%w: %q on %q", ErrUnknownParameter, parameter, target.Name())
	}

	group := &Group{}
	n := float64(len(values))

	from := current
	for i, value := range values {
		group.Members = append(group.Members, &ScalarAnimation{
			Target:    target,
			Parameter: parameter,
			From:      from,
			To:        value,
			RelStart:  float64(i) / n,
			RelStop:   float64(i+1) / n,
		})
		from = value
	}

	if len(values) > 0 {
		target.SetParameter(parameter, values[len(values)-1])
	}

	return group, nil
}
