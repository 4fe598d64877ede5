// Package errors defines the typed error model shared by the engine and its
// adapters. All failures are synchronous; there is nothing transient to retry.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	// ErrTypeEmptyInput marks a fatally empty input table.
	ErrTypeEmptyInput ErrorType = "EMPTY_INPUT"
	// ErrTypeParsing marks a row that could not be coerced into an observation.
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeValidation marks invalid configuration or arguments.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeStorage marks a filesystem read/write failure.
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeConfig marks a configuration loading failure.
	ErrTypeConfig ErrorType = "CONFIG"
)

// AppError is an application-specific error with a type, an optional cause
// and free-form context for reporting.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair to the error and returns it.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewEmptyInputError reports that the named input table contained zero rows.
// No computation is possible; the caller must treat this as fatal.
func NewEmptyInputError(table string) *AppError {
	return NewAppError(ErrTypeEmptyInput, fmt.Sprintf("%s table is empty", table), nil).
		WithContext("table", table)
}

// NewMalformedRowError reports a row whose timestamp or value could not be
// coerced. Source and row index are retained so the caller can report the
// offending cell.
func NewMalformedRowError(source string, row int, cause error) *AppError {
	return NewAppError(ErrTypeParsing, fmt.Sprintf("malformed row %d in %s table", row, source), cause).
		WithContext("source", source).
		WithContext("row", row)
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a filesystem error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
