package usecase

import (
	"errors"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/utils"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("venue is not available for the requested time")
	ErrInvalidTransition  = entity.ErrInvalidTransition
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
