// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It is wrapped by ValidationError with field-level detail.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyUserID is returned when a sample or query carries no user ID.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrMissingTimestamp is returned when a sample has a zero timestamp.
	ErrMissingTimestamp = errors.New("timestamp cannot be zero")

	// ErrMissingField is returned when a required numeric field is absent.
	ErrMissingField = errors.New("required field is missing")

	// ErrInvalidValue is returned when a field holds a value outside its domain.
	ErrInvalidValue = errors.New("invalid value")
)

// ValidationError describes why a single field of an entity was rejected.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Message)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports every ValidationError as an ErrValidation so callers only need
// errors.Is(err, ErrValidation) regardless of the wrapped cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
