package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrUsernameTaken = errors.New("username already exists")

	// ErrStorage marks a failed read or write against the user store.
	ErrStorage = errors.New("user storage failure")

	ErrNilInput = errors.New("user input cannot be nil")
)
