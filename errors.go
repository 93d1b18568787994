package dreamtalk

import "errors"

// Common errors used throughout the DreamTalk packages
var (
	// ErrUnknownParameterKind is returned when a parameter declares a kind that
	// is not present in the kind/constraint table. This is a fatal
	// configuration error surfaced at declaration time, never deferred to
	// render time.
	ErrUnknownParameterKind = errors.New("unknown parameter kind")
	// ErrDuplicateParameter indicates two parameters were declared with the same display name.
	ErrDuplicateParameter = errors.New("duplicate parameter name")
	// ErrEmptyParameterName indicates a parameter was declared without a display name.
	ErrEmptyParameterName = errors.New("parameter name must not be empty")

	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrConfigFileNotFound indicates a configuration file could not be located.
	ErrConfigFileNotFound = errors.New("configuration file not found")
)
