package shared

import (
	"errors"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidation   = NewDomainError("VALIDATION_ERROR", "Required input is missing")
	// ErrUnauthorized is the rejection reason for a missing, expired or rejected token.
	// Callers redirect to login instead of showing a generic failure.
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "Unauthorized: token is missing, invalid or expired")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// ValidationError lists the required fields that were empty.
// It never reaches the network.
type ValidationError struct {
	Fields []string
}

// NewValidationError creates a validation error for the given fields
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Message
	}
	return ErrValidation.Message + ": " + strings.Join(e.Fields, ", ")
}

// Is reports ErrValidation as the sentinel for every ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsUnauthorized reports whether err carries the unauthorized rejection reason
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
