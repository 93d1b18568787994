package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencies(t *testing.T) {
	tests := []struct {
		name string
		expr *Expr
		want []string
	}{
		{
			name: "literal has no dependencies",
			expr: Lit(42),
			want: []string{},
		},
		{
			name: "single parameter",
			expr: Param("size"),
			want: []string{"size"},
		},
		{
			name: "nested operators union dependencies",
			expr: Param("distance").Mul(Cos(Param("angle"))).Add(Param("distance")),
			want: []string{"angle", "distance"},
		},
		{
			name: "duplicates collapse",
			expr: Param("fold").Add(Param("fold")).Mul(Param("fold")),
			want: []string{"fold"},
		},
		{
			name: "deep mixed tree",
			expr: Sqrt(Param("a").Pow(2).Add(Param("b").Pow(2))).Div(Param("c")).Neg(),
			want: []string{"a", "b", "c"},
		},
		{
			name: "literals inside functions stay empty",
			expr: Sin(Lit(1.5)).Mul(2),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.Dependencies())
		})
	}
}

func TestCombinatorsAllocateNewNodes(t *testing.T) {
	a := Param("a")
	b := Param("b")
	sum := a.Add(b)

	assert.Equal(t, KindBinary, sum.Kind)
	assert.Equal(t, KindParamRef, a.Kind)
	assert.Equal(t, KindParamRef, b.Kind)
	// operands are shared, not copied
	assert.Same(t, a, sum.Operands[0])
	assert.Same(t, b, sum.Operands[1])
}

func TestCoerceNumerics(t *testing.T) {
	sum := Param("x").Add(3)
	assert.Equal(t, KindLiteral, sum.Operands[1].Kind)
	assert.Equal(t, 3.0, sum.Operands[1].Value)

	half := Param("x").Mul(0.5)
	assert.Equal(t, 0.5, half.Operands[1].Value)
}

type namedRef struct{ name string }

func (r namedRef) ExprNode() *Expr { return Param(r.name) }

func TestCoerceExprNodeOperand(t *testing.T) {
	sum := Param("distance").Add(namedRef{name: "offset"})
	assert.Equal(t, KindParamRef, sum.Operands[1].Kind)
	assert.Equal(t, []string{"distance", "offset"}, sum.Dependencies())
}

func TestCoerceRejectsUnknownTypes(t *testing.T) {
	assert.Panics(t, func() {
		Param("x").Add("not a number")
	})
}

func TestEval(t *testing.T) {
	env := map[string]float64{"distance": 200, "angle": 0}

	tests := []struct {
		name string
		expr *Expr
		want float64
	}{
		{"identity", Param("distance"), 200},
		{"cos at zero", Param("distance").Mul(Cos(Param("angle"))), 200},
		{"missing parameter reads zero", Param("ghost").Add(1), 1},
		{"power", Lit(2).Pow(10), 1024},
		{"negation", Param("distance").Neg(), -200},
		{"sqrt", Sqrt(Lit(81)), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.expr.Eval(env)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvalIdempotent(t *testing.T) {
	e := Param("a").Mul(Cos(Param("b"))).Add(Sqrt(Param("c")))
	env := map[string]float64{"a": 3, "b": 0, "c": 16}

	first, err := e.Eval(env)
	assert.NoError(t, err)

	second, err := e.Eval(env)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}
