package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for lookups and validation failures.
var (
	ErrFaultNotFound     = errors.New("fault not found")
	ErrSourceUnavailable = errors.New("dataset source unavailable")
	ErrMissingMaker      = errors.New("missing maker")
	ErrMissingModel      = errors.New("missing model")
	ErrMissingErrorCode  = errors.New("missing error code")
	ErrBadResourceURL    = errors.New("resource link has no usable URL")
)

// ValidationError wraps a sentinel with field context.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
