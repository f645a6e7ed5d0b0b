package wikitext

import "errors"

// Sentinel errors for library operations.
var (
	// ErrRender wraps every failure of a single render. Cancellation is
	// returned as the context error instead.
	ErrRender = errors.New("rendering page failed")

	// ErrInvalidSettings indicates Settings failed validation.
	ErrInvalidSettings = errors.New("invalid settings")
)
