package pygen

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/ProjectLiminality/dreamtalk/binding"
)

func TestGenerateEmptyCollector(t *testing.T) {
	g := New()

	_, err := g.Generate(binding.NewCollector())
	assert.IsError(t, err, ErrNoBindings)

	_, err = g.Generate(nil)
	assert.IsError(t, err, ErrNoBindings)
}

func TestGenerateScaledRadius(t *testing.T) {
	col := binding.NewCollector()
	size := col.Param("size")
	col.Part("circle").Prop("radius").Bind(size.Mul(0.5))

	body, err := New().Generate(col)
	assert.NoError(t, err)

	expected := `def main():
    # Read parameters
    size = get_userdata_by_name(op, "size") or 0.0

    # Apply bindings
    # circle.radius <- (size * 0.5)
    child = find_child_by_name(op, "circle")
    if child:
        prim = child.GetDown() if child.GetType() == 1023866 else child; prim[c4d.PRIM_CIRCLE_RADIUS] = (size * 0.5)

    return None
`
	assert.Equal(t, expected, body)
}

func TestGenerateSingleReadPerDependency(t *testing.T) {
	col := binding.NewCollector()
	spread := col.Param("spread")
	col.Part("left").Prop("x").Bind(spread.Neg())
	col.Part("right").Prop("x").Bind(spread)

	body, err := New().Generate(col)
	assert.NoError(t, err)

	reads := strings.Count(body, `get_userdata_by_name(op, "spread")`)
	assert.Equal(t, 1, reads)
	assert.Equal(t, 2, strings.Count(body, "find_child_by_name"))
}

func TestGenerateWriteForms(t *testing.T) {
	tests := []struct {
		name     string
		property string
		want     string
	}{
		{
			name:     "component write goes through read modify write",
			property: "x",
			want:     "pos = child.GetRelPos(); pos.x = amount; child.SetRelPos(pos)",
		},
		{
			name:     "rotation maps heading to the first component",
			property: "h",
			want:     "rot = child.GetRelRot(); rot.x = amount; child.SetRelRot(rot)",
		},
		{
			name:     "sphere radius writes the field directly",
			property: "sphere_radius",
			want:     "prim = child.GetDown() if child.GetType() == 1023866 else child; prim[c4d.PRIM_SPHERE_RAD] = amount",
		},
		{
			name:     "unknown property falls back to named parameter write",
			property: "glow",
			want:     `set_userdata_by_name(child, "glow", amount)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := binding.NewCollector()
			col.Part("part").Prop(tt.property).Bind(col.Param("amount"))

			body, err := New().Generate(col)
			assert.NoError(t, err)
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestProcedureAssembly(t *testing.T) {
	body := "def main():\n    return None\n"

	full := New().Procedure(body)
	assert.Contains(t, full, "def get_userdata_by_name(obj, param_name):")
	assert.Contains(t, full, "# Generate strokes for raw primitive children")
	assert.Contains(t, full, "generate_strokes_for_children(op, cam_world, gen_mg)")

	bare := New(WithHelpers(false), WithStrokeFallback(false)).Procedure(body)
	assert.Equal(t, body, bare)
}

func TestInjectStroke(t *testing.T) {
	body := "def main():\n    x = 1\n    return None\n"

	injected := InjectStroke(body, 4)
	assert.Contains(t, injected, "    cam = get_camera()")
	assert.Contains(t, injected, "stroke_points, stroke_polys = generate_strokes_for_children(op, cam_world, gen_mg)")
	assert.True(t, strings.HasSuffix(injected, "    return None\n"))
	assert.NotContains(t, injected, "    x = 1\n    return None")

	// A body that already returns something else is left alone.
	authored := "def main():\n    return build_stroke_geometry([], [])\n"
	assert.Equal(t, authored, InjectStroke(authored, 4))
}
