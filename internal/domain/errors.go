package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")

	// ErrLimitExceeded means a guest identity has used up its free
	// generation quota. Expected condition, renders a login prompt.
	ErrLimitExceeded = errors.New("guest limit exceeded")

	// ErrUpstream means the text-generation provider failed or its own
	// quota is exhausted. Retryable by the user.
	ErrUpstream = errors.New("upstream provider error")

	// ErrMalformedOutput means the provider violated the output contract
	// (non-JSON or wrong card shape). Not retried automatically.
	ErrMalformedOutput = errors.New("malformed provider output")

	// ErrRecentLoginRequired means account deletion was attempted with a
	// stale session. The client should re-authenticate and retry.
	ErrRecentLoginRequired = errors.New("recent login required")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
