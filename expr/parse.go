package expr

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	celast "github.com/google/cel-go/common/ast"
	"github.com/google/cel-go/common/operators"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

var (
	// ErrInvalidFormula indicates that a formula string could not be parsed.
	ErrInvalidFormula = errors.New("invalid formula")
	// ErrUnsupportedFormula indicates the formula parsed but uses constructs
	// outside the scalar expression language (strings, lists, conditionals).
	ErrUnsupportedFormula = errors.New("unsupported formula construct")
)

// Parse turns a formula string such as "distance * cos(angle)" into an
// expression tree. Bare identifiers become parameter references; the
// functions sin, cos, sqrt and pow are recognized. Parsing is syntactic only,
// so unknown identifiers are not an error here; they simply become
// dependencies of the resulting expression.
func Parse(formula string) (*Expr, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create formula environment: %w", err)
	}

	parsed, issues := env.Parse(formula)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormula, issues.Err())
	}

	return fromCEL(parsed.NativeRep().Expr())
}

func fromCEL(node celast.Expr) (*Expr, error) {
	switch node.Kind() {
	case celast.LiteralKind:
		return literalFromCEL(node.AsLiteral())
	case celast.IdentKind:
		return Param(node.AsIdent()), nil
	case celast.CallKind:
		return callFromCEL(node.AsCall())
	default:
		return nil, fmt.Errorf("%w: node kind %v", ErrUnsupportedFormula, node.Kind())
	}
}

func literalFromCEL(val ref.Val) (*Expr, error) {
	switch v := val.(type) {
	case types.Double:
		return Lit(float64(v)), nil
	case types.Int:
		return Lit(float64(v)), nil
	case types.Uint:
		return Lit(float64(v)), nil
	default:
		return nil, fmt.Errorf("%w: literal %v", ErrUnsupportedFormula, val)
	}
}

var celBinaryOps = map[string]string{
	operators.Add:      "+",
	operators.Subtract: "-",
	operators.Multiply: "*",
	operators.Divide:   "/",
}

func callFromCEL(node celast.CallExpr) (*Expr, error) {
	fn := node.FunctionName()
	args := node.Args()

	if op, ok := celBinaryOps[fn]; ok && len(args) == 2 {
		left, err := fromCEL(args[0])
		if err != nil {
			return nil, err
		}

		right, err := fromCEL(args[1])
		if err != nil {
			return nil, err
		}

		return binary(op, left, right), nil
	}

	if fn == operators.Negate && len(args) == 1 {
		operand, err := fromCEL(args[0])
		if err != nil {
			return nil, err
		}

		return operand.Neg(), nil
	}

	switch fn {
	case "sin", "cos", "sqrt":
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s expects one argument", ErrUnsupportedFormula, fn)
		}

		operand, err := fromCEL(args[0])
		if err != nil {
			return nil, err
		}

		return call(fn, operand), nil
	case "pow":
		if len(args) != 2 {
			return nil, fmt.Errorf("%w: pow expects two arguments", ErrUnsupportedFormula)
		}

		base, err := fromCEL(args[0])
		if err != nil {
			return nil, err
		}

		exponent, err := fromCEL(args[1])
		if err != nil {
			return nil, err
		}

		return base.Pow(exponent), nil
	}

	return nil, fmt.Errorf("%w: function %q", ErrUnsupportedFormula, fn)
}
