// Package holon assembles composite objects: it declares parameters,
// builds the part hierarchy, collects relationship bindings, compiles them
// into procedure text and installs the text into the composite's generator
// slot. Assembly runs exactly once, at construction, in a fixed phase order.
package holon

import (
	"fmt"
	"strings"

	dreamtalk "github.com/ProjectLiminality/dreamtalk"
	"github.com/ProjectLiminality/dreamtalk/animation"
	"github.com/ProjectLiminality/dreamtalk/binding"
	"github.com/ProjectLiminality/dreamtalk/pygen"
	"github.com/ProjectLiminality/dreamtalk/scene"
)

// Phase is the assembly lifecycle position. Phases advance in a fixed order
// and are never re-entered.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseParametersDeclared
	PhasePartsDeclared
	PhaseBindingsCompiled
	PhaseInstalled
)

var phaseNames = map[Phase]string{
	PhaseCreated:            "created",
	PhaseParametersDeclared: "parameters-declared",
	PhasePartsDeclared:      "parts-declared",
	PhaseBindingsCompiled:   "bindings-compiled",
	PhaseInstalled:          "installed",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}

	return fmt.Sprintf("phase(%d)", int(p))
}

// Spec is the author-side definition of a composite. Parts builds the child
// hierarchy through the holon passed to it.
//
// A spec may additionally implement ParameterSpec, RelationshipSpec,
// GeneratorCoder and StateSpec; each hooks one assembly phase.
type Spec interface {
	Parts(h *Holon) error
}

// ParameterSpec declares explicit parameters. These are merged with
// param-tagged struct fields; duplicate names fail assembly.
type ParameterSpec interface {
	Parameters() ([]dreamtalk.Parameter, error)
}

// RelationshipSpec declares bindings between parameters and part properties
// through an explicit declaration context.
type RelationshipSpec interface {
	Relationships(rc *RelationContext)
}

// GeneratorCoder supplies a manually authored procedure body, used only when
// no bindings were declared. The body owns its own stroke handling.
type GeneratorCoder interface {
	GeneratorCode() string
}

// StateSpec declares named parameter-value snapshots for state transitions.
type StateSpec interface {
	States() map[string]State
}

// Holon is an assembled composite: a generator node owning parameters and
// parts, with compiled procedure text installed in its generator slot.
type Holon struct {
	name string
	spec Spec
	node *scene.Node

	phase      Phase
	parameters []dreamtalk.Parameter
	parts      []*scene.Node

	collector *binding.Collector
	compiled  bool

	gen       *pygen.Generator
	machine   *StateMachine
	declaring bool
}

// Option configures assembly.
type Option func(*Holon)

// WithGenerator replaces the default procedure generator.
func WithGenerator(g *pygen.Generator) Option {
	return func(h *Holon) {
		h.gen = g
	}
}

// New assembles a composite from its spec: parameters, parts, bindings,
// compilation and installation, in that order. Any phase error aborts
// assembly.
func New(name string, spec Spec, opts ...Option) (*Holon, error) {
	h := &Holon{
		name:  name,
		spec:  spec,
		node:  scene.NewNode("generator", name),
		phase: PhaseCreated,
		gen:   pygen.New(),
	}
	for _, opt := range opts {
		opt(h)
	}

	if err := h.declareParameters(); err != nil {
		return nil, fmt.Errorf("holon %q: %w", name, err)
	}

	if err := h.declareParts(); err != nil {
		return nil, fmt.Errorf("holon %q: %w", name, err)
	}

	if err := h.compileBindings(); err != nil {
		return nil, fmt.Errorf("holon %q: %w", name, err)
	}

	if ss, ok := spec.(StateSpec); ok {
		h.machine = newStateMachine(h, ss.States())
	}

	return h, nil
}

func (h *Holon) declareParameters() error {
	var declared []dreamtalk.Parameter

	if ps, ok := h.spec.(ParameterSpec); ok {
		explicit, err := ps.Parameters()
		if err != nil {
			return err
		}

		declared = append(declared, explicit...)
	}

	implicit, err := implicitParameters(h.spec)
	if err != nil {
		return err
	}
	declared = append(declared, implicit...)

	seen := map[string]struct{}{}
	for _, p := range declared {
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: %q", dreamtalk.ErrDuplicateParameter, p.Name)
		}
		seen[p.Name] = struct{}{}

		if v, ok := p.ScalarDefault(); ok {
			h.node.SetParameter(p.Name, v)
		}
	}

	h.parameters = declared
	h.phase = PhaseParametersDeclared

	return nil
}

func (h *Holon) declareParts() error {
	if err := h.spec.Parts(h); err != nil {
		return err
	}

	h.phase = PhasePartsDeclared

	return nil
}

// AddPart registers a child node. A node already parented elsewhere is
// tracked but not re-parented. Returns the part for chaining.
func (h *Holon) AddPart(part *scene.Node) *scene.Node {
	if part.Parent() == nil {
		// Cannot fail: the parent was just checked.
		_ = h.node.AddChild(part)
	}

	h.parts = append(h.parts, part)

	return part
}

func (h *Holon) compileBindings() error {
	var relationships *binding.Collector

	if rs, ok := h.spec.(RelationshipSpec); ok {
		col, err := h.collectRelationships(rs)
		if err != nil {
			return err
		}

		relationships = col
	}

	inline := h.collectInline()

	var text string

	switch {
	case relationships != nil && !relationships.Empty():
		h.collector = relationships
		h.compiled = true
	case !inline.Empty():
		h.collector = inline
		h.compiled = true
	}

	if h.compiled {
		body, err := h.gen.Generate(h.collector)
		if err != nil {
			return err
		}

		text = h.gen.Procedure(body)
	} else {
		text = h.fallbackProcedure()
	}

	h.phase = PhaseBindingsCompiled

	h.node.InstallProcedure(text)
	h.phase = PhaseInstalled

	return nil
}

// collectInline drains bound values staged by part constructors into a
// collector, keyed by each part's hierarchy name, in part order.
func (h *Holon) collectInline() *binding.Collector {
	staged := map[string][]binding.BoundValue{}
	order := []string{}

	for _, part := range h.parts {
		values := part.TakeStaged()
		if len(values) == 0 {
			continue
		}

		staged[part.Name()] = values
		order = append(order, part.Name())
	}

	return binding.CollectInline(staged, order)
}

// fallbackProcedure is the no-bindings chain: a manually authored body if
// the spec supplies one, the stroke-generating default when parts exist,
// otherwise the trivial pass-through. Authored bodies are installed verbatim
// after the helper preamble; they own their stroke handling.
func (h *Holon) fallbackProcedure() string {
	body := pygen.PassThroughBody

	if gc, ok := h.spec.(GeneratorCoder); ok && strings.TrimSpace(gc.GeneratorCode()) != "" {
		body = gc.GeneratorCode()
	} else if len(h.parts) > 0 {
		body = pygen.StrokeFallbackBody
	}

	if !h.gen.Helpers {
		return body
	}

	return pygen.HelperModule() + "\n" + body
}

// Name returns the holon's display name.
func (h *Holon) Name() string { return h.name }

// Node returns the generator node owning the parameters and parts.
func (h *Holon) Node() *scene.Node { return h.node }

// Phase returns the current lifecycle phase.
func (h *Holon) Phase() Phase { return h.phase }

// Parameters returns the declared parameters in declaration order.
func (h *Holon) Parameters() []dreamtalk.Parameter { return h.parameters }

// Parameter finds a declared parameter by exact name, then by
// case-insensitive scan.
func (h *Holon) Parameter(name string) (dreamtalk.Parameter, bool) {
	for _, p := range h.parameters {
		if p.Name == name {
			return p, true
		}
	}

	lower := strings.ToLower(name)
	for _, p := range h.parameters {
		if strings.ToLower(p.Name) == lower {
			return p, true
		}
	}

	return dreamtalk.Parameter{}, false
}

// Parts returns the registered parts in declaration order.
func (h *Holon) Parts() []*scene.Node { return h.parts }

// Procedure returns the installed procedure text.
func (h *Holon) Procedure() string { return h.node.Procedure() }

// Collector returns the compiled binding collector, nil when the holon fell
// back to an authored or default procedure.
func (h *Holon) Collector() *binding.Collector { return h.collector }

// Set writes a live parameter value.
func (h *Holon) Set(name string, value float64) error {
	p, ok := h.Parameter(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}

	h.node.SetParameter(p.Name, value)

	return nil
}

// Value reads a live parameter value.
func (h *Holon) Value(name string) (float64, bool) {
	p, ok := h.Parameter(name)
	if !ok {
		return 0, false
	}

	return h.node.Parameter(p.Name)
}

// Evaluate runs the compiled bindings against the live tree, mirroring one
// host invocation of the installed procedure. A holon without compiled
// bindings is a no-op.
func (h *Holon) Evaluate() error {
	if !h.compiled {
		return nil
	}

	return scene.Apply(h.node, h.collector)
}

// TransitionTo builds the animation moving this holon into a named state or
// an explicit State snapshot, writing the target values live.
func (h *Holon) TransitionTo(state any) (animation.Animation, error) {
	if h.machine == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoStates, h.name)
	}

	return h.machine.TransitionTo(state)
}

// States returns the state machine, nil when the spec declares none.
func (h *Holon) States() *StateMachine { return h.machine }
