package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError converts a validator error into a structured error detail
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	details := NewValidationErrors()
	for _, fieldErr := range validationErrors {
		details.AddError(strings.ToLower(fieldErr.Field()), formatFieldError(fieldErr))
	}

	first := validationErrors[0]
	return NewErrorDetail(ErrorCodeValidationFailed, formatFieldError(first)).
		WithField(strings.ToLower(first.Field())).
		WithDetails(details.Errors)
}

// formatFieldError creates a human-readable validation error message
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "gtefield":
		return e.Field() + " must be greater than or equal to " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
