// Package apperror provides structured error handling for the condition
// algebra. All errors raised by the library use AppError so callers can
// branch on machine-readable codes.
package apperror

import (
	"errors"
	"fmt"
)

// Error codes raised by the library
const (
	// CodeNullArgument - a required argument (field, operand, sequence element) is absent
	CodeNullArgument = "NULL_ARGUMENT"

	// CodeInvalidArgument - structural violations: non-sequence IN value,
	// BETWEEN arity, zero-operand variadic composition
	CodeInvalidArgument = "INVALID_ARGUMENT"

	// CodeTypeMismatch - a value cannot be converted or compared as requested
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// AppError is the standard error type for the library.
// It implements error interface and provides structured details.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (argument name, offending value, etc.)
	Details map[string]any `json:"details,omitempty"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewNullArgument creates an error for an absent required argument
func NewNullArgument(what string) *AppError {
	return &AppError{
		Code:    CodeNullArgument,
		Message: fmt.Sprintf("%s must not be nil", what),
		Details: map[string]any{"argument": what},
	}
}

// NewInvalidArgument creates an error for a structurally invalid argument
func NewInvalidArgument(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidArgument,
		Message: message,
	}
}

// NewTypeMismatch creates an error for a value of the wrong type
func NewTypeMismatch(want string, got any) *AppError {
	return &AppError{
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("expected %s, got %T", want, got),
		Details: map[string]any{"want": want, "got": fmt.Sprintf("%T", got)},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

// IsCode checks if error is an AppError with the given code
func IsCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
