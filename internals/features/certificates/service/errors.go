package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("Certificate not found")
	ErrConstraintViolation = errors.New("Certificate identifier already exists")
	ErrValidation          = errors.New("Invalid certificate payload")
	ErrUnsupportedFormat   = errors.New("Unsupported QR image format")
)

// FieldErrors carries per-field validation failures (field -> rule).
type FieldErrors map[string]string

// ValidationError wraps ErrValidation with the offending fields.
type ValidationError struct {
	Fields FieldErrors
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Reason)
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
