// Package expr provides the symbolic expression tree backing DreamTalk
// bindings. Expressions are immutable: every combinator allocates a new node
// and never mutates its operands, so a node may be shared between bindings.
package expr

import (
	"fmt"
	"slices"
	"strings"
)

// Kind indicates what kind of expression node is described.
type Kind int

const (
	// KindLiteral is a numeric constant.
	KindLiteral Kind = iota
	// KindParamRef is a reference to a named parameter on the parent holon.
	KindParamRef
	// KindBinary is a binary arithmetic operation (+ - * / **).
	KindBinary
	// KindUnary is a unary operation (negation).
	KindUnary
	// KindCall is a math function call (sin, cos, sqrt).
	KindCall
)

// Expr is one node of a side-effect-free scalar expression over parameters
// and literals. The zero value is not meaningful; use the constructors.
type Expr struct {
	Kind     Kind
	Value    float64 // KindLiteral
	Param    string  // KindParamRef: parameter display name
	Op       string  // KindBinary: "+ - * / **"; KindUnary: "-"; KindCall: function name
	Operands []*Expr
}

// Lit returns a literal expression node.
func Lit(v float64) *Expr {
	return &Expr{Kind: KindLiteral, Value: v}
}

// Param returns a reference to the named parameter. The name is the
// parameter's display name, not the generated local variable.
func Param(name string) *Expr {
	return &Expr{Kind: KindParamRef, Param: name}
}

// Coerce converts an operand into an expression node. Accepted operands are
// *Expr, Go numeric values and anything exposing ExprNode, such as a
// parameter handle; anything else panics, because a bad operand is
// an authoring mistake that must surface at declaration time rather than
// inside the generated procedure.
func Coerce(v any) *Expr {
	switch x := v.(type) {
	case *Expr:
		return x
	case float64:
		return Lit(x)
	case float32:
		return Lit(float64(x))
	case int:
		return Lit(float64(x))
	case int64:
		return Lit(float64(x))
	case interface{ ExprNode() *Expr }:
		return x.ExprNode()
	default:
		panic(fmt.Sprintf("expr: unsupported operand type %T", v))
	}
}

func binary(op string, left *Expr, right any) *Expr {
	return &Expr{Kind: KindBinary, Op: op, Operands: []*Expr{left, Coerce(right)}}
}

// Add returns e + other.
func (e *Expr) Add(other any) *Expr { return binary("+", e, other) }

// Sub returns e - other.
func (e *Expr) Sub(other any) *Expr { return binary("-", e, other) }

// Mul returns e * other.
func (e *Expr) Mul(other any) *Expr { return binary("*", e, other) }

// Div returns e / other. Division by zero is not guarded here; it propagates
// to the host's per-frame error handling at invocation time.
func (e *Expr) Div(other any) *Expr { return binary("/", e, other) }

// Pow returns e ** other.
func (e *Expr) Pow(other any) *Expr { return binary("**", e, other) }

// Neg returns -e.
func (e *Expr) Neg() *Expr {
	return &Expr{Kind: KindUnary, Op: "-", Operands: []*Expr{e}}
}

// Sin returns sin(x).
func Sin(x any) *Expr { return call("sin", x) }

// Cos returns cos(x).
func Cos(x any) *Expr { return call("cos", x) }

// Sqrt returns sqrt(x).
func Sqrt(x any) *Expr { return call("sqrt", x) }

func call(fn string, args ...any) *Expr {
	operands := make([]*Expr, 0, len(args))
	for _, a := range args {
		operands = append(operands, Coerce(a))
	}

	return &Expr{Kind: KindCall, Op: fn, Operands: operands}
}

// Dependencies returns the sorted set of parameter names reachable in the
// expression. It is always exactly the set of ParamRef nodes in the tree.
func (e *Expr) Dependencies() []string {
	seen := map[string]struct{}{}
	e.collectDependencies(seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (e *Expr) collectDependencies(seen map[string]struct{}) {
	switch e.Kind {
	case KindParamRef:
		seen[e.Param] = struct{}{}
	case KindBinary, KindUnary, KindCall:
		for _, op := range e.Operands {
			op.collectDependencies(seen)
		}
	case KindLiteral:
	}
}

// String renders the expression in source-like notation for diagnostics.
func (e *Expr) String() string {
	switch e.Kind {
	case KindLiteral:
		return formatLiteral(e.Value)
	case KindParamRef:
		return e.Param
	case KindUnary:
		return fmt.Sprintf("(-%s)", e.Operands[0])
	case KindBinary:
		return fmt.Sprintf("(%s %s %s)", e.Operands[0], e.Op, e.Operands[1])
	case KindCall:
		args := make([]string, 0, len(e.Operands))
		for _, op := range e.Operands {
			args = append(args, op.String())
		}

		return fmt.Sprintf("%s(%s)", e.Op, strings.Join(args, ", "))
	default:
		return "<invalid>"
	}
}
