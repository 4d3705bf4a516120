package domain

import "errors"

// Storage-boundary errors. Recoverable conditions (missing filters, zero
// matches, unmatched fuzzy correction, unknown ids) never surface as errors;
// only storage faults cross the engine boundary.
var (
	// ErrDuplicateProvider indicates a bulk-load snapshot carried the same
	// provider id twice.
	ErrDuplicateProvider = errors.New("duplicate provider id in snapshot")

	// ErrStoreClosed indicates an operation was attempted after Close.
	ErrStoreClosed = errors.New("catalog store is closed")
)
