// Package errors provides structured error types for the stackchart application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// The geometry core (pkg/render/chart) never returns errors: degenerate
// input degrades to a flat or empty layout. Everything around it (dataset
// loading, configuration, caching, serving) reports failures with the
// codes below.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND / FILE_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidField, "unknown field: %s", key)
//	if errors.Is(err, errors.ErrCodeInvalidField) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDataset, origErr, "failed to read %s", path)
//
//	// Point at a dataset cell
//	err := errors.New(errors.ErrCodeInvalidValue, "not numeric").At(i, "sales")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDataset    Code = "INVALID_DATASET"
	ErrCodeInvalidField      Code = "INVALID_FIELD"
	ErrCodeInvalidValue      Code = "INVALID_VALUE"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidKind       Code = "INVALID_KIND"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidFormatter  Code = "INVALID_FORMATTER"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)

	// Record (1-based, 0 when unknown) and Field locate a problem inside a
	// dataset.
	Record int
	Field  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	if loc := e.Location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// At locates e at the zero-based record index and field of a dataset.
// A negative index or empty field leaves that part unset.
func (e *Error) At(index int, field string) *Error {
	if index >= 0 {
		e.Record = index + 1
	}
	e.Field = field
	return e
}

// Location describes where in a dataset e occurred, e.g.
// `record 3, field "sales"`, or "" when e is not located.
func (e *Error) Location() string {
	switch {
	case e.Record > 0 && e.Field != "":
		return fmt.Sprintf("record %d, field %q", e.Record, e.Field)
	case e.Record > 0:
		return fmt.Sprintf("record %d", e.Record)
	case e.Field != "":
		return fmt.Sprintf("field %q", e.Field)
	}
	return ""
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

// GetCodeOr returns the error code of err, or fallback when err carries none.
func GetCodeOr(err error, fallback Code) Code {
	if c := GetCode(err); c != "" {
		return c
	}
	return fallback
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the located message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if loc := e.Location(); loc != "" {
			return loc + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}

// IsValidation reports whether err carries one of the INVALID_* codes.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidDataset, ErrCodeInvalidField,
		ErrCodeInvalidValue, ErrCodeInvalidDimensions, ErrCodeInvalidFormat,
		ErrCodeInvalidKind, ErrCodeInvalidConfig, ErrCodeInvalidFormatter,
		ErrCodeInvalidPath:
		return true
	}
	return false
}
