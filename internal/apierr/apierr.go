// Package apierr defines the API failure taxonomy. Every client-visible
// failure is an *Error carrying an HTTP status and a safe message; the
// HTTP boundary maps them once and strips internal detail.
package apierr

import "net/http"

// Error is a typed API failure. Message is safe to return to the client;
// Cause, when set, holds internal detail for server-side logging only.
type Error struct {
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// WithCause attaches an internal cause for logging. The client-visible
// message is unchanged.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// MalformedRequest reports a missing or invalid-shape parameter.
func MalformedRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// AuthenticationFailure reports bad credentials or an invalid, expired,
// or unknown session token.
func AuthenticationFailure(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NotLoggedIn is declared for completeness; no current resource raises it.
func NotLoggedIn() *Error {
	return &Error{Status: http.StatusForbidden, Message: "Not logged in."}
}

// Persistence reports a store failure. The caller sees a generic message;
// the underlying error is kept for the log.
func Persistence(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "Internal error.", Cause: err}
}
