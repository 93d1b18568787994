package main

import (
	"math"
	"sort"

	"github.com/ProjectLiminality/dreamtalk/expr"
	"github.com/ProjectLiminality/dreamtalk/holon"
	"github.com/ProjectLiminality/dreamtalk/scene"
)

// demoSpecs indexes the built-in demo holons by name.
var demoSpecs = map[string]func() holon.Spec{
	"sun":   func() holon.Spec { return &sunDemo{Size: 100} },
	"clock": func() holon.Spec { return &clockDemo{Radius: 100} },
	"virus": func() holon.Spec { return &virusDemo{Fold: 1} },
}

func demoNames() []string {
	names := make([]string, 0, len(demoSpecs))
	for name := range demoSpecs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// sunDemo is a disc whose radius tracks a single size parameter.
type sunDemo struct {
	Size float64 `param:"length,size"`
}

func (s *sunDemo) Parts(h *holon.Holon) error {
	h.AddPart(scene.Circle("disc"))

	return nil
}

func (s *sunDemo) Relationships(rc *holon.RelationContext) {
	rc.Part("disc").Prop("radius").Bind(rc.Param("size").Mul(0.5))
}

// clockDemo places an hour hand tip by polar coordinates on a dial.
type clockDemo struct {
	Radius float64 `param:"length,radius"`
	Hour   float64 `param:"angle,hour"`
}

func (c *clockDemo) Parts(h *holon.Holon) error {
	h.AddPart(scene.Circle("dial"))
	h.AddPart(scene.Rectangle("hand", scene.Prop("height", 4.0)))

	return nil
}

func (c *clockDemo) Relationships(rc *holon.RelationContext) {
	radius := rc.Param("radius")
	hour := rc.Param("hour")

	rc.Part("dial").Prop("radius").Bind(radius)
	rc.Part("hand").Prop("width").Bind(radius.Mul(0.6))
	rc.Part("hand").Prop("x").Bind(radius.Mul(0.3).Mul(expr.Cos(hour)))
	rc.Part("hand").Prop("y").Bind(radius.Mul(0.3).Mul(expr.Sin(hour)))
	rc.Part("hand").Prop("b").Bind(hour)
}

// virusDemo folds a cube open and closed, with discrete behavioral states.
type virusDemo struct {
	Fold float64 `param:"bipolar,fold"`
}

func (v *virusDemo) Parts(h *holon.Holon) error {
	h.AddPart(scene.Sphere("core", scene.Prop("sphere_radius", 20.0)))
	h.AddPart(scene.Null("shell"))

	return nil
}

func (v *virusDemo) Relationships(rc *holon.RelationContext) {
	fold := rc.Param("fold")

	rc.Part("shell").Prop("p").Bind(fold.Mul(math.Pi / 2))
	rc.Part("core").Prop("sphere_radius").Bind(fold.Add(1).Mul(10))
}

func (v *virusDemo) States() map[string]holon.State {
	return map[string]holon.State{
		"idle":     {"fold": 1},
		"hunting":  {"fold": 0.5},
		"attached": {"fold": -1},
	}
}
