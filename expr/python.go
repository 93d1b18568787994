package expr

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.English)

// LocalIdentifier folds a parameter display name into the Python local
// variable the compiled procedure reads it into ("Stroke Width" →
// "stroke_width").
func LocalIdentifier(name string) string {
	return strings.ReplaceAll(lowerCaser.String(name), " ", "_")
}

// Python renders the expression as Python source. Parameter references render
// through resolve, which maps a display name to the expression that reads it;
// passing nil resolves every parameter to its local variable name.
func (e *Expr) Python(resolve func(param string) string) string {
	if resolve == nil {
		resolve = LocalIdentifier
	}

	switch e.Kind {
	case KindLiteral:
		return formatLiteral(e.Value)
	case KindParamRef:
		return resolve(e.Param)
	case KindUnary:
		return fmt.Sprintf("(-%s)", e.Operands[0].Python(resolve))
	case KindBinary:
		return fmt.Sprintf("(%s %s %s)",
			e.Operands[0].Python(resolve), e.Op, e.Operands[1].Python(resolve))
	case KindCall:
		args := make([]string, 0, len(e.Operands))
		for _, op := range e.Operands {
			args = append(args, op.Python(resolve))
		}

		return fmt.Sprintf("math.%s(%s)", e.Op, strings.Join(args, ", "))
	default:
		return ""
	}
}

// formatLiteral renders a numeric constant as exact decimal text, so the
// generated Python never carries binary float artifacts.
func formatLiteral(v float64) string {
	if math.IsInf(v, 1) {
		return `float("inf")`
	}

	if math.IsInf(v, -1) {
		return `float("-inf")`
	}

	if math.IsNaN(v) {
		return `float("nan")`
	}

	return decimal.NewFromFloat(v).String()
}
