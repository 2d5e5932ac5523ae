// Package apperr defines the business error type shared across service and
// transport layers. Failures are ordinary return values carrying a canonical
// result code; the HTTP boundary renders them exactly once.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a canonical result code, stable across transports.
type Code string

const (
	CodeSuccess Code = "20000"
	CodeError   Code = "50000"

	// User codes (1000x).
	CodeUserNotFound  Code = "10001"
	CodeAccountExists Code = "10002"
	CodePasswordError Code = "10003"
	CodeAccountLocked Code = "10004"

	// Parameter codes (2000x).
	CodeParamError   Code = "20001"
	CodeParamMissing Code = "20002"

	// Data codes (3000x).
	CodeDataNotFound Code = "30001"
	CodeDataExists   Code = "30002"

	// Access codes (4000x).
	CodeUnauthenticated Code = "40001"
	CodeForbidden       Code = "40003"
)

// Error carries a result code and a human-readable message. It optionally
// wraps an underlying cause for logs; the cause is never rendered to clients.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Code, e.cause)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new Error.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// UserNotFound reports that no user record matches the given identity.
func UserNotFound(identity string) *Error {
	return Newf(CodeUserNotFound, "user not found: %s", identity)
}

// AccountLocked reports a disabled account.
func AccountLocked(identity string) *Error {
	return Newf(CodeAccountLocked, "account locked: %s", identity)
}

// Unauthenticated reports a missing or unusable identity on a protected
// operation.
func Unauthenticated(cause string) *Error {
	return Newf(CodeUnauthenticated, "please log in first: %s", cause)
}

// Forbidden reports an authenticated identity with insufficient privilege.
func Forbidden(cause string) *Error {
	return Newf(CodeForbidden, "insufficient privileges: %s", cause)
}

// DataNotFound reports a missing resource.
func DataNotFound(what string) *Error {
	return Newf(CodeDataNotFound, "%s not found", what)
}

// From extracts an *Error from err's chain. Unknown errors map to CodeError
// so that internal details never leak into the envelope.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Code: CodeError, Message: "operation failed", cause: err}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
