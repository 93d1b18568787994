package binding

import "errors"

var (
	// ErrUnknownStrategyKind indicates a strategy extension entry named a kind
	// other than direct, component or named.
	ErrUnknownStrategyKind = errors.New("unknown write-strategy kind")
)
