package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request never produced an HTTP response
	// (connection refused, DNS failure, timeout).
	ErrUnavailable = errors.New("server unavailable")

	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrServerFailure = errors.New("server failure")
)

// Error is a non-2xx API response. Message carries the server-provided
// "error" field verbatim; it may be empty when the server sent no body.
type Error struct {
	StatusCode int
	Message    string
}

// Error renders the message in the portal's user-facing format:
// "<code>: <phrase>. <server message>". StatusPhrase panics on status codes
// the platform never emits, which is intentional (see status.go).
func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s. %s", e.StatusCode, StatusPhrase(e.StatusCode), e.Message)
}

// Unwrap classifies the response into one of the sentinel errors so callers
// can branch with errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch {
	case e.StatusCode == 400:
		return ErrBadRequest
	case e.StatusCode == 401:
		return ErrUnauthorized
	case e.StatusCode == 403:
		return ErrForbidden
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode == 409:
		return ErrConflict
	case e.StatusCode >= 500:
		return ErrServerFailure
	default:
		return nil
	}
}
