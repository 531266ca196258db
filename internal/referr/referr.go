// Package referr defines the coded errors surfaced at the pipeline boundary.
// Every failure a caller can observe maps to one machine-readable code plus a
// human-readable message; upstream HTTP failures additionally carry the status
// returned by the remote service.
package referr

import (
	"errors"
	"fmt"
)

// Boundary error codes.
const (
	EValidation  = "VALIDATION"
	EConfig      = "CONFIG"
	ETimeout     = "TIMEOUT"
	ENetwork     = "NETWORK_ERROR"
	ENotFound    = "NOT_FOUND"
	EServerError = "SERVER_ERROR"
	ELoadError   = "LOAD_ERROR"
	EUpstream    = "UPSTREAM_ERROR"
	ENoContent   = "NO_CONTENT"
	ENoResult    = "NO_RESULT"
	EInternal    = "INTERNAL"
)

// Error is the coded error type used throughout the pipeline.
type Error struct {
	// Code is one of the boundary constants above.
	Code string
	// Message is safe to show to an end user.
	Message string
	// Status is the HTTP status returned by an upstream service, when the
	// failure originated from one. Zero otherwise.
	Status int
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Errorf builds a coded error from a format string.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// StatusErrorf builds a coded error that records an upstream HTTP status.
func StatusErrorf(code string, status int, format string, args ...any) *Error {
	return &Error{Code: code, Status: status, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode returns the code of err, or EInternal for uncoded errors.
// A nil error yields the empty string.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EInternal
}

// ErrorMessage returns the user-facing message of err. Uncoded errors collapse
// to a generic message so internal details never leak to callers.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "an internal error has occurred"
}

// UpstreamStatus returns the upstream HTTP status recorded on err, or zero.
func UpstreamStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
