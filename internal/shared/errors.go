// Package shared holds error values and helpers used across portal layers.
package shared

import "errors"

var (
	// ErrValidation marks client-side precondition failures. These never
	// reach the network and are surfaced inline next to the offending input.
	ErrValidation = errors.New("validation error")

	// ErrBusy means a mutation for the same entity is already in flight and
	// the new one was refused to prevent a double submit.
	ErrBusy = errors.New("operation already in flight")
)

// ValidationError is a precondition failure with a user-facing message,
// e.g. "title not provided". It matches ErrValidation under errors.Is.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
