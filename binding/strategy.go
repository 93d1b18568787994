// Package binding holds DreamTalk's intermediate form: property targets,
// write strategies, bindings and the collector a declaration pass appends to.
// The pygen backend consumes this form to emit procedure text.
package binding

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// StrategyKind selects the mechanism used to apply a computed value to a
// target property.
type StrategyKind int

const (
	// DirectWrite sets a uniquely identified field on the child.
	DirectWrite StrategyKind = iota
	// ComponentWrite reads a composite value (position, rotation, scale),
	// replaces one component and writes it back.
	ComponentWrite
	// NamedParameterWrite is the best-effort fallback keyed only by the
	// human-readable parameter name on the child.
	NamedParameterWrite
)

// WriteStrategy describes how a property write is rendered. For DirectWrite,
// Attribute is the host constant and Unwrap selects the nested-primitive
// lookup (the raw spline/mesh inside a generator wrapper). For
// ComponentWrite, Vector names the composite value and Component the field.
type WriteStrategy struct {
	Kind      StrategyKind
	Attribute string
	Vector    string
	Component string
	Unwrap    bool
}

// defaultStrategies is the static property → strategy table. It mirrors the
// well-known host properties; anything absent falls back to
// NamedParameterWrite without validating that the destination exists.
var defaultStrategies = map[string]WriteStrategy{
	// Position
	"x": {Kind: ComponentWrite, Vector: "position", Component: "x"},
	"y": {Kind: ComponentWrite, Vector: "position", Component: "y"},
	"z": {Kind: ComponentWrite, Vector: "position", Component: "z"},
	// Rotation
	"h": {Kind: ComponentWrite, Vector: "rotation", Component: "x"},
	"p": {Kind: ComponentWrite, Vector: "rotation", Component: "y"},
	"b": {Kind: ComponentWrite, Vector: "rotation", Component: "z"},
	// Scale
	"scale_x": {Kind: ComponentWrite, Vector: "scale", Component: "x"},
	"scale_y": {Kind: ComponentWrite, Vector: "scale", Component: "y"},
	"scale_z": {Kind: ComponentWrite, Vector: "scale", Component: "z"},
	// Primitive fields; Unwrap reaches the raw spline/mesh inside a wrapper
	"radius":        {Kind: DirectWrite, Attribute: "c4d.PRIM_CIRCLE_RADIUS", Unwrap: true},
	"width":         {Kind: DirectWrite, Attribute: "c4d.PRIM_RECTANGLE_WIDTH", Unwrap: true},
	"height":        {Kind: DirectWrite, Attribute: "c4d.PRIM_RECTANGLE_HEIGHT", Unwrap: true},
	"sphere_radius": {Kind: DirectWrite, Attribute: "c4d.PRIM_SPHERE_RAD", Unwrap: true},
	// Camera
	"zoom": {Kind: DirectWrite, Attribute: "c4d.CAMERA_ZOOM"},
}

var (
	strategyMu    sync.RWMutex
	extraStrategy = map[string]WriteStrategy{}
)

// RegisterStrategy adds or replaces a property → strategy entry. New hosts
// register their properties here instead of relying on the named-parameter
// fallback, so typos can still be told apart from intentional dynamics.
func RegisterStrategy(property string, strategy WriteStrategy) {
	strategyMu.Lock()
	defer strategyMu.Unlock()
	extraStrategy[property] = strategy
}

// LookupStrategy resolves the write strategy for a property name. Registered
// entries win over the static table. Unknown properties resolve to
// NamedParameterWrite; the second result reports whether the property was in
// either table.
func LookupStrategy(property string) (WriteStrategy, bool) {
	strategyMu.RLock()
	defer strategyMu.RUnlock()

	if s, ok := extraStrategy[property]; ok {
		return s, true
	}

	if s, ok := defaultStrategies[property]; ok {
		return s, true
	}

	return WriteStrategy{Kind: NamedParameterWrite}, false
}

// strategyFile is the on-disk shape of a strategy extension file.
type strategyFile struct {
	Properties map[string]struct {
		Kind      string `yaml:"kind"`
		Attribute string `yaml:"attribute"`
		Vector    string `yaml:"vector"`
		Component string `yaml:"component"`
		Unwrap    bool   `yaml:"unwrap"`
	} `yaml:"properties"`
}

// LoadStrategies registers property → strategy entries from YAML. The file
// shape is:
//
//	properties:
//	  glow: {kind: direct, attribute: "c4d.LIGHT_BRIGHTNESS"}
//	  tilt: {kind: component, vector: rotation, component: y}
func LoadStrategies(data []byte) error {
	var file strategyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse strategy file: %w", err)
	}

	for property, entry := range file.Properties {
		strategy := WriteStrategy{
			Attribute: entry.Attribute,
			Vector:    entry.Vector,
			Component: entry.Component,
			Unwrap:    entry.Unwrap,
		}

		switch entry.Kind {
		case "direct":
			strategy.Kind = DirectWrite
		case "component":
			strategy.Kind = ComponentWrite
		case "named":
			strategy.Kind = NamedParameterWrite
		default:
			return fmt.Errorf("%w: %q for property %q", ErrUnknownStrategyKind, entry.Kind, property)
		}

		RegisterStrategy(property, strategy)
	}

	return nil
}
