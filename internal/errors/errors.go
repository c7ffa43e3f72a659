// Package errors provides error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeParse indicates the dataset is not valid tabular data
	TypeParse Type = "PARSE_ERROR"

	// TypeSchema indicates a required dataset column is absent
	TypeSchema Type = "SCHEMA_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"
)

// Context keys
const (
	ContextMissing   = "missing"
	ContextAvailable = "available"
	ContextField     = "field"
	ContextLimit     = "limit"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Strings returns a string-list context value, or nil
func (e *Error) Strings(key string) []string {
	if e.Context == nil {
		return nil
	}
	v, _ := e.Context[key].([]string)
	return v
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// As returns the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := As(err); ok {
		return e.Type == t
	}
	return false
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parse creates a parse error
func Parse(message string, cause error) *Error {
	return Wrap(TypeParse, message, cause)
}

// Schema creates a schema error naming the missing columns and listing
// every column that was present.
func Schema(missing, available []string) *Error {
	quoted := make([]string, len(missing))
	for i, m := range missing {
		quoted[i] = "'" + m + "'"
	}
	noun := "column"
	if len(missing) > 1 {
		noun = "columns"
	}
	e := Newf(TypeSchema,
		"required %s %s not found. Column names must match exactly (case-sensitive, no surrounding spaces). Available columns are: %s",
		noun, strings.Join(quoted, ", "), strings.Join(available, ", "))
	e.WithContext(ContextMissing, append([]string(nil), missing...))
	e.WithContext(ContextAvailable, append([]string(nil), available...))
	return e
}

// MissingColumns returns the missing column names carried by a schema error
func MissingColumns(err error) ([]string, bool) {
	e, ok := As(err)
	if !ok || e.Type != TypeSchema {
		return nil, false
	}
	return e.Strings(ContextMissing), true
}

// AvailableColumns returns the available column names carried by a schema error
func AvailableColumns(err error) ([]string, bool) {
	e, ok := As(err)
	if !ok || e.Type != TypeSchema {
		return nil, false
	}
	return e.Strings(ContextAvailable), true
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
