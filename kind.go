package dreamtalk

import (
	"fmt"

	"github.com/ProjectLiminality/dreamtalk/expr"
)

// ParameterKind represents the semantic kind of a holon parameter.
// This type is shared across all packages.
type ParameterKind string

const (
	// KindLength is a distance or size (0 → ∞), displayed in meters.
	KindLength ParameterKind = "length"
	// KindAngle is a rotation in radians, displayed in degrees.
	KindAngle ParameterKind = "angle"
	// KindBipolar is a signed normalized value (-1 → 1) such as fold or balance.
	KindBipolar ParameterKind = "bipolar"
	// KindCompletion is a progress or opacity value (0 → 1), displayed as percent.
	KindCompletion ParameterKind = "completion"
	// KindColor is an RGB color.
	KindColor ParameterKind = "color"
	// KindInteger is a whole number (counts, indices).
	KindInteger ParameterKind = "integer"
	// KindBool is an on/off flag.
	KindBool ParameterKind = "bool"
)

// Constraint describes the host-side data type, display unit and value range
// a parameter kind maps to. DataType and Unit use the host's own constant
// names because they end up verbatim in generated procedure text and user
// data descriptions.
type Constraint struct {
	DataType string
	Unit     string
	Min      *float64
	Max      *float64
	Default  any
}

func floatPtr(v float64) *float64 { return &v }

// kindConstraints is the kind → constraint table. Parameter declaration
// consults it; an absent kind is a fatal configuration error.
var kindConstraints = map[ParameterKind]Constraint{
	KindLength:     {DataType: "DTYPE_REAL", Unit: "DESC_UNIT_METER", Min: floatPtr(0), Default: 100.0},
	KindAngle:      {DataType: "DTYPE_REAL", Unit: "DESC_UNIT_DEGREE", Default: 0.0},
	KindBipolar:    {DataType: "DTYPE_REAL", Min: floatPtr(-1), Max: floatPtr(1), Default: 0.0},
	KindCompletion: {DataType: "DTYPE_REAL", Unit: "DESC_UNIT_PERCENT", Min: floatPtr(0), Max: floatPtr(1), Default: 0.0},
	KindColor:      {DataType: "DTYPE_COLOR", Default: [3]float64{1, 1, 1}},
	KindInteger:    {DataType: "DTYPE_LONG", Default: 0},
	KindBool:       {DataType: "DTYPE_BOOL", Default: false},
}

// KindConstraint returns the constraint descriptor for a parameter kind.
// Unknown kinds fail immediately so typos surface before any rendering.
func KindConstraint(kind ParameterKind) (Constraint, error) {
	c, ok := kindConstraints[kind]
	if !ok {
		return Constraint{}, fmt.Errorf("%w: %q", ErrUnknownParameterKind, kind)
	}

	return c, nil
}

// Parameter is a named, typed, bounded value owned by a holon.
type Parameter struct {
	Name    string
	Kind    ParameterKind
	Default any
}

// NewParameter validates the kind against the constraint table and fills the
// default from the table when none is given.
func NewParameter(name string, kind ParameterKind, def any) (Parameter, error) {
	if name == "" {
		return Parameter{}, ErrEmptyParameterName
	}

	c, err := KindConstraint(kind)
	if err != nil {
		return Parameter{}, fmt.Errorf("parameter %q: %w", name, err)
	}

	if def == nil {
		def = c.Default
	}

	return Parameter{Name: name, Kind: kind, Default: def}, nil
}

// ExprNode lets a parameter stand in wherever an expression operand is
// expected; it coerces to a reference to the parameter itself.
func (p Parameter) ExprNode() *expr.Expr {
	return expr.Param(p.Name)
}

// ScalarDefault reports the parameter's default as a float64 where the kind
// has a scalar live value. Color defaults have no scalar form.
func (p Parameter) ScalarDefault() (float64, bool) {
	switch v := p.Default.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

// Constraint returns the constraint descriptor for this parameter's kind.
// The kind is validated at construction, so the table lookup cannot fail.
func (p Parameter) Constraint() Constraint {
	c := kindConstraints[p.Kind]
	return c
}
