package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidColumnType is returned when a column type is not valid.
	ErrInvalidColumnType = errors.New("invalid column type")
)

// ValidationError wraps a validation failure with the field that caused it.
// It always wraps ErrValidation (directly or through Err) so callers can
// check with errors.Is(err, domain.ErrValidation).
type ValidationError struct {
	Field   string // The field that failed validation (e.g., "id", "title")
	Message string // Human-readable description of the failure
	Err     error  // Underlying error, typically ErrValidation or a field sentinel
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped errors to support errors.Is/errors.As.
// ErrValidation is always part of the chain so callers can match the
// generic sentinel even when a field-specific one was wrapped.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil && !errors.Is(e.Err, ErrValidation) {
		return []error{e.Err, ErrValidation}
	}
	if e.Err != nil {
		return []error{e.Err}
	}
	return []error{ErrValidation}
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
