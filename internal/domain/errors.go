package domain

import "errors"

// Validation errors. These reject an intent at the boundary without
// mutating any state; callers treat them as a no-op signal.
var (
	// ErrEmptyMessage rejects a message whose content is empty after trimming.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrNoOwner rejects a send before an owner identity has been set.
	ErrNoOwner = errors.New("owner identity is not set")

	// ErrBusy rejects a send or regenerate while a backend call is in flight.
	ErrBusy = errors.New("a request is already in flight")
)
