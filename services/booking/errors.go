package booking

import (
	"fmt"

	"njeyali/models"
)

// ServiceError is the typed error returned by booking operations.
type ServiceError struct {
	Code    string
	Message string
	Fields  models.FieldErrors
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeValidation        = "validationError"
	CodeInvalidTransition = "invalidTransition"
	CodeNotFound          = "notFound"
	CodeConflict          = "concurrencyConflict"
)

func NewValidationError(fields models.FieldErrors) error {
	return &ServiceError{
		Code:    CodeValidation,
		Message: "request failed validation",
		Fields:  fields,
	}
}

func NewInvalidTransitionError(from, to models.BookingStatus) error {
	return &ServiceError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition booking from %s to %s", from, to),
	}
}

func NewNotFoundError(id string) error {
	return &ServiceError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("booking %s not found", id),
	}
}

func NewConflictError(id string) error {
	return &ServiceError{
		Code:    CodeConflict,
		Message: fmt.Sprintf("booking %s was modified concurrently, retries exhausted", id),
	}
}

// ErrorCode extracts the service error code, or "" for untyped errors.
func ErrorCode(err error) string {
	if se, ok := err.(*ServiceError); ok {
		return se.Code
	}
	return ""
}
