package expr

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownFunction indicates a call node references a function the
// evaluator does not know.
var ErrUnknownFunction = errors.New("unknown function")

// Eval evaluates the expression against a parameter environment. Missing
// parameters read as 0, matching the `or 0.0` default the compiled procedure
// applies. Domain errors (division by zero, sqrt of negatives) are not
// guarded and surface as Inf/NaN, exactly as they would in the host sandbox.
func (e *Expr) Eval(env map[string]float64) (float64, error) {
	switch e.Kind {
	case KindLiteral:
		return e.Value, nil
	case KindParamRef:
		return env[e.Param], nil
	case KindUnary:
		v, err := e.Operands[0].Eval(env)
		if err != nil {
			return 0, err
		}

		return -v, nil
	case KindBinary:
		left, err := e.Operands[0].Eval(env)
		if err != nil {
			return 0, err
		}

		right, err := e.Operands[1].Eval(env)
		if err != nil {
			return 0, err
		}

		switch e.Op {
		case "+":
			return left + right, nil
		case "-":
			return left - right, nil
		case "*":
			return left * right, nil
		case "/":
			return left / right, nil
		case "**":
			return math.Pow(left, right), nil
		}

		return 0, fmt.Errorf("%w: operator %q", ErrUnknownFunction, e.Op)
	case KindCall:
		args := make([]float64, 0, len(e.Operands))

		for _, op := range e.Operands {
			v, err := op.Eval(env)
			if err != nil {
				return 0, err
			}

			args = append(args, v)
		}

		switch e.Op {
		case "sin":
			return math.Sin(args[0]), nil
		case "cos":
			return math.Cos(args[0]), nil
		case "sqrt":
			return math.Sqrt(args[0]), nil
		case "pow":
			return math.Pow(args[0], args[1]), nil
		}

		return 0, fmt.Errorf("%w: %q", ErrUnknownFunction, e.Op)
	default:
		return 0, fmt.Errorf("%w: invalid node", ErrUnknownFunction)
	}
}
