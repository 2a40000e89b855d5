// Package api contains the client-side building blocks for talking to the
// LesVieux publishing platform.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the status probe, login, token liveness, post CRUD per visibility
//     scope, and account administration.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that unwraps
//     the platform's {"result": ...}/{"error": ...} envelope, injects a
//     bearer token from a TokenProvider, tags each request with an
//     X-Request-Id, and maps response status codes to sentinel errors.
//  3. The fixed status-code phrase table (StatusPhrase) used to format
//     user-facing error messages.
//
// # Error Handling
//
// Failures are exposed as *Error values that unwrap to sentinel errors
// callers can match with errors.Is: ErrUnauthorized, ErrForbidden,
// ErrNotFound, ErrConflict, ErrBadRequest, ErrServerFailure. Transport-level
// failures (the request never produced a response) unwrap to ErrUnavailable.
//
// A 401 on any authenticated call additionally fires the OnUnauthorized hook
// so the session layer can drop its token, whatever call site hit the 401.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; each request also carries the
// client-wide timeout.
package api
