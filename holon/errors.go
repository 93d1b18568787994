package holon

import "errors"

// Sentinel errors for assembly and state transitions.
var (
	// ErrReentrantDeclaration indicates a relationship callback tried to
	// start a nested declaration pass on the same holon.
	ErrReentrantDeclaration = errors.New("relationship declaration already in progress")

	// ErrRelationshipFailed indicates the relationship callback panicked;
	// the declaration context was released before the error surfaced.
	ErrRelationshipFailed = errors.New("relationship declaration failed")

	// ErrInvalidParameterField indicates a param-tagged struct field cannot
	// be turned into a parameter (unexported, or a non-scalar type).
	ErrInvalidParameterField = errors.New("invalid parameter field")

	// ErrNoStates indicates a transition was requested on a holon whose
	// spec declares no states.
	ErrNoStates = errors.New("holon declares no states")

	// ErrUnknownState indicates a transition named a state the machine does
	// not index.
	ErrUnknownState = errors.New("unknown state")

	// ErrUnknownParameter indicates a live read or write addressed a
	// parameter the holon does not declare.
	ErrUnknownParameter = errors.New("unknown parameter")
)
