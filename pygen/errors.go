package pygen

import "errors"

var (
	// ErrNoBindings is the sentinel returned when a collector holds no
	// bindings. The caller falls back to a manually authored procedure or a
	// default pass-through instead of installing an empty body.
	ErrNoBindings = errors.New("no bindings to compile")

	// ErrGenerateProcedure indicates a general procedure generation error.
	ErrGenerateProcedure = errors.New("failed to generate procedure text")
)
