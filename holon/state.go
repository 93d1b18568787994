package holon

import (
	"fmt"
	"slices"

	"github.com/ProjectLiminality/dreamtalk/animation"
)

// State is a named snapshot of target parameter values, a relational
// configuration the holon can transition into.
type State map[string]float64

// StateMachine indexes a holon's declared states and turns transitions
// between them into animations.
type StateMachine struct {
	holon   *Holon
	states  map[string]State
	current string
}

func newStateMachine(h *Holon, states map[string]State) *StateMachine {
	return &StateMachine{holon: h, states: states}
}

// State looks up a declared state by name.
func (m *StateMachine) State(name string) (State, bool) {
	s, ok := m.states[name]

	return s, ok
}

// Current returns the name of the last state transitioned to, empty before
// any named transition.
func (m *StateMachine) Current() string { return m.current }

// TransitionTo builds the animation moving the holon into the given state,
// passed either as a name or as an explicit State snapshot. For each
// resolvable key it animates from the current live value to the target and
// immediately writes the target live, so the scene reflects the final state
// before playback. Keys naming no declared parameter are skipped.
//
// Returns nil when nothing resolved, the single sub-animation when exactly
// one did, and a group otherwise.
func (m *StateMachine) TransitionTo(state any) (animation.Animation, error) {
	var (
		snapshot State
		name     string
	)

	switch s := state.(type) {
	case string:
		declared, ok := m.states[s]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownState, s)
		}

		snapshot = declared
		name = s
	case State:
		snapshot = s
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownState, state)
	}

	// Map iteration order is random; sort keys so the sub-animation order
	// is stable.
	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var members []animation.Animation

	for _, key := range keys {
		param, ok := m.holon.Parameter(key)
		if !ok {
			continue
		}

		target := snapshot[key]
		current, _ := m.holon.node.Parameter(param.Name)

		members = append(members, animation.NewScalar(m.holon.node, param.Name, current, target))
		m.holon.node.SetParameter(param.Name, target)
	}

	if name != "" {
		m.current = name
	}

	return animation.Compose(members), nil
}
