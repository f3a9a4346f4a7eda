// Package apperr defines the four error kinds of spec.md §7 (Input,
// Unavailable, Transient, Fatal) as a small typed-error hierarchy,
// wrapping causes with plain fmt.Errorf("...: %w", err) the way the
// teacher's pkg/ingest and pkg/dictionary do rather than adopting a
// third-party errors package — see DESIGN.md for why.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error per spec.md §7's four read-path categories.
type Kind string

const (
	// KindInput: malformed query, unknown tag, too many radicals, empty
	// body without a permitting tag. Maps to HTTP 400.
	KindInput Kind = "input"
	// KindUnavailable: preferred-language index not loaded; the caller
	// falls back to English and logs once, it is never surfaced as a
	// request failure on its own.
	KindUnavailable Kind = "unavailable"
	// KindTransient: the underlying index cursor failed mid-iteration;
	// the read path returns a partial, lower-bounded result rather than
	// propagating this as an error, so it exists mainly for logging.
	KindTransient Kind = "transient"
	// KindFatal: startup-time index load failure (process abort) or a
	// request-time internal invariant violation. Maps to HTTP 500.
	KindFatal Kind = "fatal"
)

// Error is the application-wide error envelope: every handler-facing
// error ends up as one of these so the HTTP layer can map it to a
// status code without inspecting error strings.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a Kind/Message to an existing error without discarding it.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Input is shorthand for New(KindInput, ...) with fmt.Sprintf formatting.
func Input(format string, args ...any) *Error {
	return New(KindInput, fmt.Sprintf(format, args...))
}

// Fatal is shorthand for New(KindFatal, ...) with fmt.Sprintf formatting.
func Fatal(format string, args ...any) *Error {
	return New(KindFatal, fmt.Sprintf(format, args...))
}

// As is a thin errors.As wrapper for extracting the *Error from a chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// KindOf reports the Kind of err if it (or a wrapped cause) is an
// *Error, and KindFatal otherwise — the conservative default for an
// error nobody classified.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindFatal
}

// StatusCode maps a Kind to the HTTP status spec.md §7 assigns it.
func StatusCode(k Kind) int {
	switch k {
	case KindInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
