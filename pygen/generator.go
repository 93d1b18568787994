// Package pygen compiles collected bindings into Python procedure text for
// the host's per-object generator slot. The emitted procedure is
// self-contained: it reads only from the node context the host passes at
// invocation time, so one compiled text is safe to share across clones.
package pygen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/ProjectLiminality/dreamtalk/binding"
	"github.com/ProjectLiminality/dreamtalk/expr"
)

// Generator turns a binding collector into procedure text.
type Generator struct {
	Indent         int
	StrokeFallback bool
	Helpers        bool
}

// Option is a function that configures Generator
type Option func(*Generator)

// WithIndent sets the number of spaces per indentation level.
func WithIndent(n int) Option {
	return func(g *Generator) {
		g.Indent = n
	}
}

// WithStrokeFallback controls whether compiled procedures end with the
// camera-facing stroke pass instead of a bare return.
func WithStrokeFallback(enabled bool) Option {
	return func(g *Generator) {
		g.StrokeFallback = enabled
	}
}

// WithHelpers controls whether the helper preamble is included in the final
// procedure text.
func WithHelpers(enabled bool) Option {
	return func(g *Generator) {
		g.Helpers = enabled
	}
}

// New creates a new Generator
func New(opts ...Option) *Generator {
	g := &Generator{
		Indent:         4,
		StrokeFallback: true,
		Helpers:        true,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

type paramReadData struct {
	Local string
	Name  string
}

type bindingData struct {
	Comment string
	Child   string
	Write   string
}

type bodyTemplateData struct {
	Ind      string
	Params   []paramReadData
	Bindings []bindingData
}

var bodyTemplate = template.Must(template.New("procedure_body").Parse(`def main():
{{- if .Params}}
{{.Ind}}# Read parameters
{{- range .Params}}
{{$.Ind}}{{.Local}} = get_userdata_by_name(op, "{{.Name}}") or 0.0
{{- end}}
{{- end}}

{{.Ind}}# Apply bindings
{{- range .Bindings}}
{{$.Ind}}# {{.Comment}}
{{$.Ind}}child = find_child_by_name(op, "{{.Child}}")
{{$.Ind}}if child:
{{$.Ind}}{{$.Ind}}{{.Write}}
{{- end}}

{{.Ind}}return None
`))

// Generate compiles the collector's bindings into a procedure body. An empty
// collector returns ErrNoBindings so the caller can fall back.
func (g *Generator) Generate(col *binding.Collector) (string, error) {
	if col == nil || col.Empty() {
		return "", ErrNoBindings
	}

	data := bodyTemplateData{Ind: strings.Repeat(" ", g.Indent)}

	for _, dep := range col.Dependencies() {
		data.Params = append(data.Params, paramReadData{
			Local: expr.LocalIdentifier(dep),
			Name:  dep,
		})
	}

	for _, b := range col.Bindings() {
		value := b.Expression.Python(nil)

		data.Bindings = append(data.Bindings, bindingData{
			Comment: fmt.Sprintf("%s.%s <- %s", b.Target.Child, b.Target.Property, b.Expression),
			Child:   b.Target.Child,
			Write:   renderWrite(b.Target, value),
		})
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerateProcedure, err)
	}

	return buf.String(), nil
}

// vectorAccessors maps a composite value name to its read call, write call
// and the local the read-modify-write goes through.
var vectorAccessors = map[string][3]string{
	"position": {"GetRelPos", "SetRelPos", "pos"},
	"rotation": {"GetRelRot", "SetRelRot", "rot"},
	"scale":    {"GetRelScale", "SetRelScale", "scale"},
}

func renderWrite(target binding.PropertyTarget, value string) string {
	strategy := target.Strategy

	switch strategy.Kind {
	case binding.ComponentWrite:
		acc, ok := vectorAccessors[strategy.Vector]
		if !ok {
			// Unknown composite value; fall through to the named write
			return renderNamedWrite(target.Property, value)
		}

		return fmt.Sprintf("%[3]s = child.%[1]s(); %[3]s.%[4]s = %[5]s; child.%[2]s(%[3]s)",
			acc[0], acc[1], acc[2], strategy.Component, value)
	case binding.DirectWrite:
		if strategy.Unwrap {
			// Reach the raw spline/mesh nested inside a generator wrapper
			return fmt.Sprintf(
				"prim = child.GetDown() if child.GetType() == 1023866 else child; prim[%s] = %s",
				strategy.Attribute, value)
		}

		return fmt.Sprintf("child[%s] = %s", strategy.Attribute, value)
	default:
		return renderNamedWrite(target.Property, value)
	}
}

func renderNamedWrite(property, value string) string {
	return fmt.Sprintf("set_userdata_by_name(child, %q, %s)", property, value)
}

// Procedure assembles the final installable text: the helper preamble (when
// enabled) plus the body, with the stroke pass injected in place of the
// body's trailing bare return (when enabled).
func (g *Generator) Procedure(body string) string {
	if g.StrokeFallback {
		body = InjectStroke(body, g.Indent)
	}

	if !g.Helpers {
		return body
	}

	return HelperModule() + "\n" + body
}
