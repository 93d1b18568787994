package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	dreamtalk "github.com/ProjectLiminality/dreamtalk"
	"github.com/ProjectLiminality/dreamtalk/binding"
	"github.com/ProjectLiminality/dreamtalk/expr"
	"github.com/ProjectLiminality/dreamtalk/holon"
	"github.com/ProjectLiminality/dreamtalk/pygen"
)

// Sentinel errors
var (
	ErrUnknownDemo     = errors.New("unknown demo holon")
	ErrInvalidOverride = errors.New("invalid parameter override, expected name=value")
)

// loadGenerator builds the procedure generator from configuration. A missing
// config file at the default path silently falls back to defaults; an
// explicitly named file must exist.
func loadGenerator(ctx *Context) (*pygen.Generator, error) {
	config, err := dreamtalk.LoadConfig(ctx.Config)
	if err != nil {
		if errors.Is(err, dreamtalk.ErrConfigFileNotFound) && ctx.Config == "dreamtalk.yaml" {
			config = dreamtalk.DefaultConfig()
		} else {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if config.StrategyFile != "" {
		data, err := os.ReadFile(config.StrategyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read strategy file: %w", err)
		}

		if err := binding.LoadStrategies(data); err != nil {
			return nil, fmt.Errorf("failed to load strategy file: %w", err)
		}

		if ctx.Verbose {
			color.Blue("Loaded write strategies from %s", config.StrategyFile)
		}
	}

	return pygen.New(
		pygen.WithIndent(config.Generation.Indent),
		pygen.WithStrokeFallback(config.Generation.StrokeFallback),
		pygen.WithHelpers(config.Generation.Helpers),
	), nil
}

func buildDemo(ctx *Context, name string) (*holon.Holon, error) {
	spec, ok := demoSpecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownDemo, name, strings.Join(demoNames(), ", "))
	}

	gen, err := loadGenerator(ctx)
	if err != nil {
		return nil, err
	}

	return holon.New(name, spec(), holon.WithGenerator(gen))
}

// CompileCmd represents the compile command
type CompileCmd struct {
	Holon  string `arg:"" help:"Demo holon to compile" default:"sun"`
	Output string `short:"o" help:"Write procedure text to a file instead of stdout" type:"path"`
}

func (cmd *CompileCmd) Run(ctx *Context) error {
	h, err := buildDemo(ctx, cmd.Holon)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Compiled %q: phase %s, %d parameter(s), %d part(s)",
			h.Name(), h.Phase(), len(h.Parameters()), len(h.Parts()))
	}

	if cmd.Output != "" {
		if err := os.WriteFile(cmd.Output, []byte(h.Procedure()), 0o644); err != nil {
			return fmt.Errorf("failed to write procedure: %w", err)
		}

		if !ctx.Quiet {
			color.Green("Wrote %s", cmd.Output)
		}

		return nil
	}

	fmt.Print(h.Procedure())

	return nil
}

// InspectCmd represents the inspect command
type InspectCmd struct {
	Holon string `arg:"" help:"Demo holon to inspect" default:"sun"`
}

func (cmd *InspectCmd) Run(ctx *Context) error {
	h, err := buildDemo(ctx, cmd.Holon)
	if err != nil {
		return err
	}

	color.Cyan("Holon %q (%s)", h.Name(), h.Phase())

	fmt.Println("Parameters:")
	for _, p := range h.Parameters() {
		c := p.Constraint()
		rng := ""
		if c.Min != nil || c.Max != nil {
			lo, hi := "-inf", "inf"
			if c.Min != nil {
				lo = strconv.FormatFloat(*c.Min, 'g', -1, 64)
			}
			if c.Max != nil {
				hi = strconv.FormatFloat(*c.Max, 'g', -1, 64)
			}
			rng = fmt.Sprintf(" [%s, %s]", lo, hi)
		}

		fmt.Printf("  %-12s %s%s default=%v\n", p.Name, p.Kind, rng, p.Default)
	}

	fmt.Println("Parts:")
	for _, part := range h.Parts() {
		fmt.Printf("  %-12s %s\n", part.Name(), part.Kind())
	}

	if col := h.Collector(); col != nil {
		fmt.Println("Bindings:")
		for _, b := range col.Bindings() {
			fmt.Printf("  %s.%s <- %s\n", b.Target.Child, b.Target.Property, b.Expression)
		}

		fmt.Printf("Dependencies: %s\n", strings.Join(col.Dependencies(), ", "))
	} else {
		fmt.Println("Bindings: none (fallback procedure installed)")
	}

	return nil
}

// EvalCmd represents the eval command
type EvalCmd struct {
	Holon string   `arg:"" help:"Demo holon to evaluate" default:"sun"`
	Set   []string `help:"Parameter overrides as name=value" short:"s"`
	State string   `help:"Transition to a named state before evaluating"`
}

func (cmd *EvalCmd) Run(ctx *Context) error {
	h, err := buildDemo(ctx, cmd.Holon)
	if err != nil {
		return err
	}

	for _, override := range cmd.Set {
		name, raw, ok := strings.Cut(override, "=")
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidOverride, override)
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidOverride, override)
		}

		if err := h.Set(name, value); err != nil {
			return err
		}
	}

	if cmd.State != "" {
		anim, err := h.TransitionTo(cmd.State)
		if err != nil {
			return err
		}

		if anim != nil && ctx.Verbose {
			start, stop := anim.Window()
			color.Blue("Transition to %q spans [%g, %g]", cmd.State, start, stop)
		}
	}

	if err := h.Evaluate(); err != nil {
		return err
	}

	color.Cyan("Holon %q after evaluation:", h.Name())

	for _, name := range h.Node().ParameterNames() {
		v, _ := h.Node().Parameter(name)
		fmt.Printf("  param %-12s = %g\n", name, v)
	}

	for _, part := range h.Parts() {
		fmt.Printf("  part %q pos=(%g, %g, %g) rot=(%g, %g, %g)\n",
			part.Name(),
			part.Position.X, part.Position.Y, part.Position.Z,
			part.Rotation.X, part.Rotation.Y, part.Rotation.Z)

		for _, prop := range []string{"radius", "width", "height", "sphere_radius"} {
			if v, ok := part.Property(prop); ok {
				fmt.Printf("    %s = %g\n", prop, v)
			}
		}
	}

	return nil
}

// FormulaCmd represents the formula command
type FormulaCmd struct {
	Formula string `arg:"" help:"Formula to parse, e.g. 'distance * cos(angle)'"`
}

func (cmd *FormulaCmd) Run(ctx *Context) error {
	e, err := expr.Parse(cmd.Formula)
	if err != nil {
		return err
	}

	fmt.Printf("expression:   %s\n", e)
	fmt.Printf("python:       %s\n", e.Python(nil))
	fmt.Printf("dependencies: %s\n", strings.Join(e.Dependencies(), ", "))

	return nil
}
