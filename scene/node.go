// Package scene provides an in-memory node tree mirroring the host document:
// named children, per-node parameters, transform vectors and primitive
// fields. Composites build their part hierarchy here, and the evaluator in
// this package executes compiled bindings against it the same way the
// installed procedure does inside the sandbox.
package scene

import (
	"github.com/google/uuid"

	"github.com/ProjectLiminality/dreamtalk/binding"
)

// Vector is a three-component value for position, rotation and scale.
type Vector struct {
	X, Y, Z float64
}

// Node is one object in the tree. Parameters model the host's named
// user data; Properties model directly addressed primitive fields.
type Node struct {
	id   string
	name string
	kind string

	parent   *Node
	children []*Node

	Position Vector
	Rotation Vector
	Scale    Vector

	params     map[string]float64
	paramOrder []string
	props      map[string]float64

	procedure string
	staged    []binding.BoundValue
}

// Option configures a node at construction time.
type Option func(*Node)

// NewNode creates a node of the given kind.
func NewNode(kind, name string, opts ...Option) *Node {
	n := &Node{
		id:     uuid.NewString(),
		name:   name,
		kind:   kind,
		Scale:  Vector{X: 1, Y: 1, Z: 1},
		params: map[string]float64{},
		props:  map[string]float64{},
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Null creates a plain grouping node.
func Null(name string, opts ...Option) *Node {
	return NewNode("null", name, opts...)
}

// Circle creates a circle spline node.
func Circle(name string, opts ...Option) *Node {
	return NewNode("circle", name, append([]Option{withDefaultProp("radius", 100)}, opts...)...)
}

// Rectangle creates a rectangle spline node.
func Rectangle(name string, opts ...Option) *Node {
	defaults := []Option{withDefaultProp("width", 100), withDefaultProp("height", 100)}

	return NewNode("rectangle", name, append(defaults, opts...)...)
}

// Sphere creates a sphere mesh node.
func Sphere(name string, opts ...Option) *Node {
	return NewNode("sphere", name, append([]Option{withDefaultProp("sphere_radius", 100)}, opts...)...)
}

func withDefaultProp(property string, def float64) Option {
	return func(n *Node) {
		n.props[property] = def
	}
}

// Prop sets a primitive field at construction. The value may be a plain
// number, an expression, or an inline bound value; non-numeric values stage a
// binding for the owning composite to collect, with the bound default used as
// the construction value.
func Prop(property string, value any) Option {
	return func(n *Node) {
		switch v := value.(type) {
		case float64:
			n.props[property] = v
		case float32:
			n.props[property] = float64(v)
		case int:
			n.props[property] = float64(v)
		case binding.BoundValue:
			v.TargetProperty = property
			n.props[property] = v.Default
			n.staged = append(n.staged, v)
		default:
			bv := binding.Bound(value, n.props[property])
			bv.TargetProperty = property
			n.staged = append(n.staged, bv)
		}
	}
}

// At sets the node's position.
func At(x, y, z float64) Option {
	return func(n *Node) {
		n.Position = Vector{X: x, Y: y, Z: z}
	}
}

// WithParameter seeds a named parameter.
func WithParameter(name string, value float64) Option {
	return func(n *Node) {
		n.setParam(name, value)
	}
}

// ID returns the node's unique identifier.
func (n *Node) ID() string { return n.id }

// Name returns the node's display name.
func (n *Node) Name() string { return n.name }

// Kind returns the node's primitive kind.
func (n *Node) Kind() string { return n.kind }

// Parent returns the node's parent, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node { return n.children }

// AddChild appends a child. A node already under another parent is rejected.
func (n *Node) AddChild(child *Node) error {
	if child.parent != nil {
		return ErrAlreadyParented
	}

	child.parent = n
	n.children = append(n.children, child)

	return nil
}

// Child finds a direct child by display name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, child := range n.children {
		if child.name == name {
			return child, true
		}
	}

	return nil, false
}

func (n *Node) setParam(name string, value float64) {
	if _, ok := n.params[name]; !ok {
		n.paramOrder = append(n.paramOrder, name)
	}

	n.params[name] = value
}

// Parameter reads a named parameter.
func (n *Node) Parameter(name string) (float64, bool) {
	v, ok := n.params[name]

	return v, ok
}

// SetParameter writes a named parameter, creating it if absent.
func (n *Node) SetParameter(name string, value float64) {
	n.setParam(name, value)
}

// ParameterNames returns declared parameter names in declaration order.
func (n *Node) ParameterNames() []string {
	return n.paramOrder
}

// Property reads a primitive field.
func (n *Node) Property(name string) (float64, bool) {
	v, ok := n.props[name]

	return v, ok
}

// SetProperty writes a primitive field.
func (n *Node) SetProperty(name string, value float64) {
	n.props[name] = value
}

// InstallProcedure stores the generated procedure text on this node's
// generator slot, replacing any previous text.
func (n *Node) InstallProcedure(text string) {
	n.procedure = text
}

// Procedure returns the installed procedure text, empty if none.
func (n *Node) Procedure() string {
	return n.procedure
}

// TakeStaged consumes the inline bound values staged by this node's
// constructor. A second call returns nil.
func (n *Node) TakeStaged() []binding.BoundValue {
	staged := n.staged
	n.staged = nil

	return staged
}
