package errors

import "errors"

var (
	// ErrStorage marks a failed read or write against the reservation store.
	// Repositories wrap the driver error with it.
	ErrStorage = errors.New("reservation storage failure")

	ErrNilInput = errors.New("reservation input cannot be nil")
)
