package apperrors

import (
	"errors"
	"fmt"
)

// Code identifies one of the closed set of outcomes an operation can report.
type Code string

const (
	// CodeInvalidArgument means the caller supplied bad input. Never retried.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeAlreadyReferred means the referred user already has a referrer.
	// This is a normal business outcome, not a system fault.
	CodeAlreadyReferred Code = "ALREADY_REFERRED"
	// CodeNotFound means a record is missing. User absence is treated as a
	// zero-state by the services, so this code is not surfaced for users.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnavailable means a transient store failure. Retried internally up
	// to a bounded count, then surfaced.
	CodeUnavailable Code = "UNAVAILABLE"
)

// Error carries a Code alongside a message and an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that wraps an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the Code from an error chain, or "" if none is present.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalidArgument reports whether err carries CodeInvalidArgument.
func IsInvalidArgument(err error) bool {
	return CodeOf(err) == CodeInvalidArgument
}

// IsAlreadyReferred reports whether err carries CodeAlreadyReferred.
func IsAlreadyReferred(err error) bool {
	return CodeOf(err) == CodeAlreadyReferred
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsUnavailable reports whether err carries CodeUnavailable.
func IsUnavailable(err error) bool {
	return CodeOf(err) == CodeUnavailable
}
