package binding

import (
	"github.com/ProjectLiminality/dreamtalk/expr"
)

// BoundValue pairs an expression with a fallback default, for inline bindings
// passed directly to a part constructor instead of a relationship pass. The
// part keeps the default for initial construction and stages the binding; the
// parent holon consumes staged values once during its collection pass.
type BoundValue struct {
	Expression *expr.Expr
	Default    float64
	// SourceParam is the originating parameter name when the expression is a
	// plain reference; kept for diagnostics only.
	SourceParam string
	// TargetProperty is filled in by the part constructor that received the
	// value, recording which property the binding addresses.
	TargetProperty string
}

// Bound creates an inline bound value from an expression (or parameter
// reference, or numeric literal) and a construction-time default.
func Bound(value any, def float64) BoundValue {
	e := expr.Coerce(value)

	bv := BoundValue{Expression: e, Default: def}
	if e.Kind == expr.KindParamRef {
		bv.SourceParam = e.Param
	}

	return bv
}

// CollectInline synthesizes a collector from staged bound values. Each entry
// pairs a child identifier with the bound values its constructor staged; the
// write strategy is resolved the same way a relationship binding resolves it.
func CollectInline(staged map[string][]BoundValue, order []string) *Collector {
	collector := NewCollector()

	for _, child := range order {
		for _, bv := range staged[child] {
			collector.Part(child).Prop(bv.TargetProperty).Bind(bv.Expression)
		}
	}

	return collector
}
