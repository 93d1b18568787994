package scene

import (
	"github.com/ProjectLiminality/dreamtalk/binding"
)

// Apply executes collected bindings against an in-memory tree, matching what
// the compiled procedure does inside the sandbox: each dependency is read
// once from the root's parameters with a zero default, bindings run in
// declaration order, and a binding whose child is missing is skipped.
func Apply(root *Node, col *binding.Collector) error {
	if col == nil {
		return nil
	}

	env := map[string]float64{}
	for _, dep := range col.Dependencies() {
		v, _ := root.Parameter(dep)
		env[dep] = v
	}

	for _, b := range col.Bindings() {
		child, ok := root.Child(b.Target.Child)
		if !ok {
			continue
		}

		value, err := b.Expression.Eval(env)
		if err != nil {
			return err
		}

		applyWrite(child, b.Target, value)
	}

	return nil
}

func applyWrite(child *Node, target binding.PropertyTarget, value float64) {
	switch target.Strategy.Kind {
	case binding.ComponentWrite:
		vec := vectorFor(child, target.Strategy.Vector)
		if vec == nil {
			return
		}

		setComponent(vec, target.Strategy.Component, value)
	case binding.DirectWrite:
		child.SetProperty(target.Property, value)
	default:
		// Named writes only touch parameters that already exist, matching
		// the best-effort behavior in the sandbox.
		if _, ok := child.Parameter(target.Property); ok {
			child.SetParameter(target.Property, value)
		}
	}
}

func vectorFor(n *Node, name string) *Vector {
	switch name {
	case "position":
		return &n.Position
	case "rotation":
		return &n.Rotation
	case "scale":
		return &n.Scale
	default:
		return nil
	}
}

func setComponent(vec *Vector, component string, value float64) {
	switch component {
	case "x":
		vec.X = value
	case "y":
		vec.Y = value
	case "z":
		vec.Z = value
	}
}
