package binding

import (
	"slices"

	"github.com/ProjectLiminality/dreamtalk/expr"
)

// PropertyTarget is the destination of a binding: a child identifier, a
// property name on that child, and the write strategy resolved for it.
type PropertyTarget struct {
	Child    string
	Property string
	Strategy WriteStrategy
}

// Binding is a declared fact: one child property equals the value of one
// expression, re-evaluated on every procedure invocation. Bindings are never
// mutated after creation.
type Binding struct {
	Target     PropertyTarget
	Expression *expr.Expr
}

// Collector accumulates the bindings emitted during one declaration pass, in
// declaration order. Part and parameter handles are memoized so repeated
// access to the same child or parameter reuses the same node.
type Collector struct {
	bindings []Binding
	parts    map[string]*PartHandle
	params   map[string]*expr.Expr
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{
		parts:  map[string]*PartHandle{},
		params: map[string]*expr.Expr{},
	}
}

// Part returns the memoized handle for a child identifier.
func (c *Collector) Part(name string) *PartHandle {
	if handle, ok := c.parts[name]; ok {
		return handle
	}

	handle := &PartHandle{name: name, collector: c}
	c.parts[name] = handle

	return handle
}

// Param returns the memoized parameter reference for a display name.
func (c *Collector) Param(name string) *expr.Expr {
	if ref, ok := c.params[name]; ok {
		return ref
	}

	ref := expr.Param(name)
	c.params[name] = ref

	return ref
}

// Add appends a binding. Later bindings addressing the same target are kept;
// they overwrite earlier ones when the generated procedure runs.
func (c *Collector) Add(b Binding) {
	c.bindings = append(c.bindings, b)
}

// Bindings returns the accumulated bindings in declaration order.
func (c *Collector) Bindings() []Binding {
	return c.bindings
}

// Empty reports whether no bindings were collected.
func (c *Collector) Empty() bool {
	return len(c.bindings) == 0
}

// Dependencies returns the sorted union of all bindings' parameter
// dependencies.
func (c *Collector) Dependencies() []string {
	seen := map[string]struct{}{}
	names := []string{}

	for _, b := range c.bindings {
		for _, dep := range b.Expression.Dependencies() {
			if _, ok := seen[dep]; ok {
				continue
			}

			seen[dep] = struct{}{}
			names = append(names, dep)
		}
	}

	slices.Sort(names)

	return names
}

// PartHandle is the recording proxy for one child. Property access returns a
// bindable target; the handle itself carries no state beyond its identifier.
type PartHandle struct {
	name      string
	collector *Collector
}

// Name returns the child identifier the handle records against.
func (h *PartHandle) Name() string { return h.name }

// Prop returns a bindable target for a property on this part. The strategy is
// resolved from the property table; unknown properties fall back to a
// best-effort named-parameter write.
func (h *PartHandle) Prop(property string) Target {
	strategy, _ := LookupStrategy(property)

	return Target{
		collector: h.collector,
		target: PropertyTarget{
			Child:    h.name,
			Property: property,
			Strategy: strategy,
		},
	}
}

// Target is a bindable property destination tied to a collector.
type Target struct {
	collector *Collector
	target    PropertyTarget
}

// PropertyTarget returns the underlying destination.
func (t Target) PropertyTarget() PropertyTarget { return t.target }

// Bind creates a binding from the value to this target and registers it with
// the collector, returning the binding. The value may be an expression, a
// parameter reference or a bare numeric literal.
func (t Target) Bind(value any) Binding {
	b := Binding{Target: t.target, Expression: expr.Coerce(value)}
	t.collector.Add(b)

	return b
}
