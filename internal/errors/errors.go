// Package errors provides sentinel errors for the shadeplan CLI.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a graph or config file failed schema validation.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration indicates a build graph that cannot produce a correct
	// bundle, such as an embed cycle or two conflicting relocations.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound indicates a module, file, or coordinate was not found.
	ErrNotFound = errors.New("not found")

	// ErrOutdated indicates a generated file no longer matches its inputs.
	ErrOutdated = errors.New("outdated")

	// ErrToolUnavailable indicates an external tool could not produce output.
	ErrToolUnavailable = errors.New("tool unavailable")
)

// DetailError captures structured error information for diagnostics.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error refers to (optional).
	Location string

	// Field is the offending field for schema errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewConfigurationError creates a build configuration error with details.
func NewConfigurationError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "invalid build configuration",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrConfiguration,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewOutdatedError creates an outdated-file error with details.
func NewOutdatedError(message, location, hint string) error {
	return &DetailError{
		Type:     "file outdated",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrOutdated,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
