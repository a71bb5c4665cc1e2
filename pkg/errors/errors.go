// Package errors provides structured error types for agptools.
//
// Every failure raised by the layout core carries a machine-readable [Code]
// so callers can tell caller/input errors apart without matching on message
// text:
//
//   - MISALIGNED_BOUNDARY: a flip range does not land on record boundaries
//   - INVALID_BREAKPOINT: a split point does not fall inside a gap
//   - EMPTY_OBJECT: an operation would produce an object with no records
//   - UNKNOWN_OBJECT / COMPONENT_NOT_FOUND: a name or id cannot be resolved
//   - DUPLICATE_NAME: two objects would share a name
//   - OUT_OF_RANGE: a coordinate lies outside the span it must fit in
//
// None of these are transient; nothing in the core retries them.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownObject, "object %q not in layout", name)
//	if errors.Is(err, errors.ErrCodeUnknownObject) {
//	    // Handle missing object
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "line %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Layout edit errors
	ErrCodeMisalignedBoundary Code = "MISALIGNED_BOUNDARY"
	ErrCodeInvalidBreakpoint  Code = "INVALID_BREAKPOINT"
	ErrCodeEmptyObject        Code = "EMPTY_OBJECT"
	ErrCodeOverlappingRanges  Code = "OVERLAPPING_RANGES"
	ErrCodeDuplicateName      Code = "DUPLICATE_NAME"
	ErrCodeOutOfRange         Code = "OUT_OF_RANGE"

	// Resolution errors
	ErrCodeUnknownObject     Code = "UNKNOWN_OBJECT"
	ErrCodeComponentNotFound Code = "COMPONENT_NOT_FOUND"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	// Infrastructure errors
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
