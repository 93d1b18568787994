package scene

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ProjectLiminality/dreamtalk/binding"
	"github.com/ProjectLiminality/dreamtalk/expr"
)

func TestTreeBasics(t *testing.T) {
	root := Null("group")
	circle := Circle("inner")

	assert.NoError(t, root.AddChild(circle))

	got, ok := root.Child("inner")
	assert.True(t, ok)
	assert.Equal(t, circle.ID(), got.ID())

	_, ok = root.Child("missing")
	assert.False(t, ok)

	other := Null("other")
	assert.IsError(t, other.AddChild(circle), ErrAlreadyParented)
}

func TestPrimitiveDefaults(t *testing.T) {
	circle := Circle("c")
	radius, ok := circle.Property("radius")
	assert.True(t, ok)
	assert.Equal(t, 100.0, radius)

	rect := Rectangle("r", Prop("width", 30.0))
	width, _ := rect.Property("width")
	height, _ := rect.Property("height")
	assert.Equal(t, 30.0, width)
	assert.Equal(t, 100.0, height)
}

func TestPropStagesInlineBindings(t *testing.T) {
	size := expr.Param("size")
	circle := Circle("c", Prop("radius", binding.Bound(size.Mul(0.5), 25)))

	// The bound default becomes the construction value.
	radius, _ := circle.Property("radius")
	assert.Equal(t, 25.0, radius)

	staged := circle.TakeStaged()
	assert.Equal(t, 1, len(staged))
	assert.Equal(t, "radius", staged[0].TargetProperty)

	// Staged values are consumed exactly once.
	assert.Equal(t, 0, len(circle.TakeStaged()))
}

func TestPropStagesBareExpression(t *testing.T) {
	circle := Circle("c", Prop("radius", expr.Param("size")))

	staged := circle.TakeStaged()
	assert.Equal(t, 1, len(staged))
	assert.Equal(t, "size", staged[0].SourceParam)

	// Default falls back to the primitive's construction value.
	radius, _ := circle.Property("radius")
	assert.Equal(t, 100.0, radius)
}

func TestApplyDirectAndComponentWrites(t *testing.T) {
	root := Null("sun")
	root.SetParameter("size", 80)
	root.SetParameter("spread", 30)

	circle := Circle("disc")
	left := Null("left")
	assert.NoError(t, root.AddChild(circle))
	assert.NoError(t, root.AddChild(left))

	col := binding.NewCollector()
	size := col.Param("size")
	spread := col.Param("spread")
	col.Part("disc").Prop("radius").Bind(size.Mul(0.5))
	col.Part("left").Prop("x").Bind(spread.Neg())

	assert.NoError(t, Apply(root, col))

	radius, _ := circle.Property("radius")
	assert.Equal(t, 40.0, radius)
	assert.Equal(t, -30.0, left.Position.X)
}

func TestApplyMissingChildAndParameter(t *testing.T) {
	root := Null("root")
	circle := Circle("disc")
	assert.NoError(t, root.AddChild(circle))

	col := binding.NewCollector()
	col.Part("ghost").Prop("radius").Bind(col.Param("size"))
	col.Part("disc").Prop("radius").Bind(col.Param("size").Add(5))

	// Missing child skipped; undeclared parameter reads as zero.
	assert.NoError(t, Apply(root, col))

	radius, _ := circle.Property("radius")
	assert.Equal(t, 5.0, radius)
}

func TestApplyNamedWriteRequiresExistingParameter(t *testing.T) {
	root := Null("root")
	child := Null("panel", WithParameter("glow", 0))
	assert.NoError(t, root.AddChild(child))

	root.SetParameter("level", 2)

	col := binding.NewCollector()
	col.Part("panel").Prop("glow").Bind(col.Param("level"))
	col.Part("panel").Prop("shine").Bind(col.Param("level"))

	assert.NoError(t, Apply(root, col))

	glow, _ := child.Parameter("glow")
	assert.Equal(t, 2.0, glow)

	_, ok := child.Parameter("shine")
	assert.False(t, ok)
}

func TestApplyDeclarationOrderLastWriteWins(t *testing.T) {
	root := Null("root")
	circle := Circle("disc")
	assert.NoError(t, root.AddChild(circle))

	col := binding.NewCollector()
	col.Part("disc").Prop("radius").Bind(10)
	col.Part("disc").Prop("radius").Bind(20)

	assert.NoError(t, Apply(root, col))

	radius, _ := circle.Property("radius")
	assert.Equal(t, 20.0, radius)
}
