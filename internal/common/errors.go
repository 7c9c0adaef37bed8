package common

import "errors"

// Sentinel errors shared across layers. Handlers match on these with
// errors.Is instead of parsing message text.
var (
	// ErrNotFound marks a lookup whose subject does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks a request rejected before any work was done
	ErrInvalidInput = errors.New("invalid input")
)
