package animation

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ProjectLiminality/dreamtalk/scene"
)

func TestSequenceSubRanges(t *testing.T) {
	node := scene.Null("virus", scene.WithParameter("fold", 0))

	group, err := Sequence(node, "fold", 1, 0.1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(group.Members))

	wantWindows := [][2]float64{{0, 1.0 / 3}, {1.0 / 3, 2.0 / 3}, {2.0 / 3, 1}}
	wantTargets := []float64{1, 0.1, 1}

	for i, m := range group.Members {
		start, stop := m.Window()
		assert.Equal(t, wantWindows[i][0], start)
		assert.Equal(t, wantWindows[i][1], stop)

		sa, ok := m.(*ScalarAnimation)
		assert.True(t, ok)
		assert.Equal(t, wantTargets[i], sa.To)
	}

	// Each step starts where the previous ended.
	assert.Equal(t, 0.0, group.Members[0].(*ScalarAnimation).From)
	assert.Equal(t, 1.0, group.Members[1].(*ScalarAnimation).From)
	assert.Equal(t, 0.1, group.Members[2].(*ScalarAnimation).From)

	// The live value reflects the final target immediately.
	live, _ := node.Parameter("fold")
	assert.Equal(t, 1.0, live)
}

func TestSequenceUnknownParameter(t *testing.T) {
	node := scene.Null("virus")

	_, err := Sequence(node, "fold", 1)
	assert.IsError(t, err, ErrUnknownParameter)
}

func TestScalarValueAt(t *testing.T) {
	a := &ScalarAnimation{From: -1, To: 1, RelStart: 0.25, RelStop: 0.75}

	assert.Equal(t, -1.0, a.ValueAt(0))
	assert.Equal(t, -1.0, a.ValueAt(0.25))
	assert.Equal(t, 0.0, a.ValueAt(0.5))
	assert.Equal(t, 1.0, a.ValueAt(0.75))
	assert.Equal(t, 1.0, a.ValueAt(1))
}

func TestGroupWindowUnion(t *testing.T) {
	g := NewGroup(
		&ScalarAnimation{RelStart: 0.2, RelStop: 0.4},
		&ScalarAnimation{RelStart: 0.3, RelStop: 0.9},
	)

	start, stop := g.Window()
	assert.Equal(t, 0.2, start)
	assert.Equal(t, 0.9, stop)
}

func TestCompose(t *testing.T) {
	assert.True(t, Compose(nil) == nil)

	single := NewScalar(scene.Null("n"), "p", 0, 1)
	assert.Equal[Animation](t, single, Compose([]Animation{single}))

	composed := Compose([]Animation{single, single})
	_, ok := composed.(*Group)
	assert.True(t, ok)
}

func TestAnimatorChain(t *testing.T) {
	node := scene.Null("virus",
		scene.WithParameter("fold", -1),
		scene.WithParameter("size", 100),
	)

	anim, err := For(node).To("fold", 0.5).To("size", 200).Build()
	assert.NoError(t, err)

	group, ok := anim.(*Group)
	assert.True(t, ok)
	assert.Equal(t, 2, len(group.Members))

	fold, _ := node.Parameter("fold")
	size, _ := node.Parameter("size")
	assert.Equal(t, 0.5, fold)
	assert.Equal(t, 200.0, size)
}

func TestAnimatorDeferredError(t *testing.T) {
	node := scene.Null("virus", scene.WithParameter("fold", 0))

	_, err := For(node).To("fold", 1).To("missing", 2).Build()
	assert.IsError(t, err, ErrUnknownParameter)
}
