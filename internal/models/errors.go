package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks malformed input. Match with errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable wraps connectivity failures of the persistence layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports which input field was rejected.
type ValidationError struct {
	Field   string
	Message string
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
