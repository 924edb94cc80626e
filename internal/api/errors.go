package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mnemos/mnemos-api/internal/service/auth"
	"github.com/mnemos/mnemos-api/internal/service/word_practice"
	"github.com/mnemos/mnemos-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrVocabularyNotFound),
		errors.Is(err, word_practice.ErrItemNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, word_practice.ErrInvalidLimit),
		errors.Is(err, word_practice.ErrInvalidDays),
		errors.Is(err, word_practice.ErrInvalidFilter):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	// Not found errors
	case errors.Is(err, store.ErrVocabularyNotFound),
		errors.Is(err, word_practice.ErrItemNotFound):
		return "Vocabulary item not found"

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return "Vocabulary item already exists"

	// Bad request errors
	case errors.Is(err, word_practice.ErrInvalidLimit):
		return "Practice limit must be a positive number"

	case errors.Is(err, word_practice.ErrInvalidDays):
		return "History days out of range"

	case errors.Is(err, word_practice.ErrInvalidFilter):
		return "Invalid filter value"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format:
		// "Key: 'RecordResultRequest.VocabularyID' Error:Field validation for 'VocabularyID' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "uuid":
		return "invalid identifier format"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
