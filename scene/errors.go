package scene

import "errors"

// Sentinel errors for tree manipulation.
var (
	// ErrAlreadyParented indicates an attempt to attach a node that already
	// has a parent.
	ErrAlreadyParented = errors.New("node already has a parent")
)
