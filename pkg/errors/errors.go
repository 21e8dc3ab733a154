// Package errors provides structured error types for rnadraw.
//
// Every failure raised by the layout and annotation core carries a
// machine-readable [Code], so the CLI, the HTTP API and library callers can
// react to the kind of failure without string matching:
//
//   - STRUCTURE_SYNTAX, UNBALANCED_STRUCTURE: dot-bracket parsing
//   - LAYOUT: an inconsistent pairing relation handed to the layout engine
//   - UNKNOWN_SCHEME, UNKNOWN_PALETTE, DATA_LENGTH_MISMATCH, DATA_SYNTAX,
//     COLOR_SPEC_SYNTAX: colour resolution
//   - INVALID_*, NOT_FOUND, INTERNAL: orchestration and I/O
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStructureSyntax, "unexpected %q at position %d", c, i)
//	if errors.Is(err, errors.ErrCodeStructureSyntax) {
//	    // Handle syntax error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Structure errors
	ErrCodeStructureSyntax     Code = "STRUCTURE_SYNTAX"
	ErrCodeUnbalancedStructure Code = "UNBALANCED_STRUCTURE"
	ErrCodeLayout              Code = "LAYOUT"

	// Colouring errors
	ErrCodeUnknownScheme      Code = "UNKNOWN_SCHEME"
	ErrCodeUnknownPalette     Code = "UNKNOWN_PALETTE"
	ErrCodeDataLengthMismatch Code = "DATA_LENGTH_MISMATCH"
	ErrCodeDataSyntax         Code = "DATA_SYNTAX"
	ErrCodeColorSpecSyntax    Code = "COLOR_SPEC_SYNTAX"

	// Input validation errors
	ErrCodeInvalidInput             Code = "INVALID_INPUT"
	ErrCodeInvalidFormat            Code = "INVALID_FORMAT"
	ErrCodeInvalidPath              Code = "INVALID_PATH"
	ErrCodeSequenceLengthMismatch   Code = "SEQUENCE_LENGTH_MISMATCH"
	ErrCodeInvalidSequence          Code = "INVALID_SEQUENCE"
	ErrCodeInvalidDrawingID         Code = "INVALID_DRAWING_ID"
	ErrCodeInvalidSpacingParameters Code = "INVALID_SPACING"

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
// The outermost *Error decides, so a wrapped LAYOUT error stays LAYOUT
// even when its cause carries another code.
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

// IsInput reports whether err was caused by bad caller input rather than by
// an internal failure. The HTTP API maps these to 400 responses.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeStructureSyntax, ErrCodeUnbalancedStructure, ErrCodeLayout,
		ErrCodeUnknownScheme, ErrCodeUnknownPalette, ErrCodeDataLengthMismatch,
		ErrCodeDataSyntax, ErrCodeColorSpecSyntax, ErrCodeInvalidInput,
		ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeSequenceLengthMismatch,
		ErrCodeInvalidSequence, ErrCodeInvalidDrawingID, ErrCodeInvalidSpacingParameters:
		return true
	}
	return false
}
