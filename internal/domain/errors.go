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
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrContention means a transaction could not commit after the store's
	// internal retries. Nothing was persisted; the caller may retry.
	ErrContention = errors.New("contention")

	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidToken  = errors.New("invalid invite token")
	ErrUploadFailed  = errors.New("upload failed")

	// ErrInvariant marks a transition that would leave an aggregate in an
	// inconsistent state. It always indicates a bug, never bad input.
	ErrInvariant = errors.New("invariant violation")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
// Cause optionally narrows the failure (e.g. ErrInvalidAmount).
type ValidationError struct {
	Errors []FieldError
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

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

// NewInvalidAmountError reports a payment amount that is non-positive or
// would overshoot the charge. It matches both ErrValidation and ErrInvalidAmount.
func NewInvalidAmountError(message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: "amount", Message: message}},
		Cause:  ErrInvalidAmount,
	}
}

// ExternalServiceError is returned when a call to an external collaborator
// (the object store) kept failing after bounded retries.
type ExternalServiceError struct {
	Service  string
	Attempts int
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Service, e.Attempts, e.Err)
}

func (e *ExternalServiceError) Unwrap() []error {
	return []error{ErrUploadFailed, e.Err}
}
