// Package sgerrors provides structured error handling for sheetgrid with
// error categorization, key-value context, and stack traces captured at the
// point of creation.
//
// # Overview
//
// The sgerrors package extends Go's standard error handling with:
//   - Error categorization through ErrorType
//   - Structured context with key-value details
//   - Automatic stack trace capture
//   - Error wrapping with cause preservation
//
// # Basic Usage
//
//	// Create a new error
//	err := sgerrors.New(sgerrors.ErrorTypeColumnNotFound, "no such column")
//
//	// Add context
//	err = err.WithDetail("column", name)
//
//	// Wrap existing errors
//	if err := renderSheet(t); err != nil {
//	    return sgerrors.Wrap(err, sgerrors.ErrorTypeExportFailure, "spreadsheet export failed").
//	        WithDetail("sheet", sheetName)
//	}
//
// # Propagation policy
//
// Per-cell parse failures are never represented as errors at all; they
// become nulls during column materialization. Predicate failures during
// Filter exclude the row. Report rendering failures degrade to a text
// fallback inside the export package. Every other error kind surfaces to
// the caller synchronously, and nothing in the core is retried.
package sgerrors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType categorizes an error for handling strategies and API mapping.
type ErrorType string

const (
	// ErrorTypeInvalidInput represents rejected input (nil grid, empty path).
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	// ErrorTypeEmptyWorksheet represents a worksheet with zero columns.
	ErrorTypeEmptyWorksheet ErrorType = "empty_worksheet"
	// ErrorTypeColumnNotFound represents a lookup by unknown column name.
	ErrorTypeColumnNotFound ErrorType = "column_not_found"
	// ErrorTypeOutOfRange represents a row index beyond the row count.
	ErrorTypeOutOfRange ErrorType = "out_of_range"
	// ErrorTypeEmptyColumn represents statistics over a numeric column with
	// no non-null values. Reported as a per-column skip, never fatal.
	ErrorTypeEmptyColumn ErrorType = "empty_column"
	// ErrorTypeExportFailure represents a renderer failure.
	ErrorTypeExportFailure ErrorType = "export_failure"
	// ErrorTypeParse represents a grid or file parsing failure.
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeConfig represents configuration errors.
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeInternal represents internal errors.
	ErrorTypeInternal ErrorType = "internal"
)

// Error is a structured error carrying a type, optional cause, key-value
// details, and the call stack at creation time.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame is a single frame in the captured call stack.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error. Chainable.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates an error of the given type, capturing the call stack.
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf creates an error with a formatted message.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps err with a type and message, preserving err as the cause.
// If err is already a structured Error its stack is preserved.
// Returns nil when err is nil.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existing.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType reports whether err is a structured Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack records up to maxFrames call frames, skipping the given
// number of frames from the top.
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
