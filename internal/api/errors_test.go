package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnemos/mnemos-api/internal/service/auth"
	"github.com/mnemos/mnemos-api/internal/service/word_practice"
	"github.com/mnemos/mnemos-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, expected: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, expected: http.StatusUnauthorized},
		{
			name:     "item not found",
			err:      word_practice.ErrItemNotFound,
			expected: http.StatusNotFound,
		},
		{name: "store not found", err: store.ErrVocabularyNotFound, expected: http.StatusNotFound},
		{name: "duplicate", err: store.ErrDuplicate, expected: http.StatusConflict},
		{name: "invalid limit", err: word_practice.ErrInvalidLimit, expected: http.StatusBadRequest},
		{name: "invalid days", err: word_practice.ErrInvalidDays, expected: http.StatusBadRequest},
		{
			name:     "invalid filter",
			err:      word_practice.ErrInvalidFilter,
			expected: http.StatusBadRequest,
		},
		{name: "invalid entity", err: store.ErrInvalidEntity, expected: http.StatusBadRequest},
		{
			name:     "wrapped error keeps its mapping",
			err:      fmt.Errorf("context: %w", word_practice.ErrItemNotFound),
			expected: http.StatusNotFound,
		},
		{
			name:     "unknown error is internal",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known errors get specific messages", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Vocabulary item not found",
			GetSafeErrorMessage(word_practice.ErrItemNotFound))
		assert.Equal(t, "Practice limit must be a positive number",
			GetSafeErrorMessage(word_practice.ErrInvalidLimit))
	})

	t.Run("unknown errors never leak details", func(t *testing.T) {
		t.Parallel()
		msg := GetSafeErrorMessage(errors.New("dial tcp 10.0.0.5:5432: timeout"))
		assert.Equal(t, "An unexpected error occurred", msg)
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	t.Run("extracts field and tag", func(t *testing.T) {
		t.Parallel()
		err := errors.New(
			"Key: 'RecordResultRequest.VocabularyID' " +
				"Error:Field validation for 'VocabularyID' failed on the 'required' tag")
		assert.Equal(t, "Invalid VocabularyID: required field", SanitizeValidationError(err))
	})

	t.Run("non-validation errors get a generic message", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Validation error",
			SanitizeValidationError(errors.New("something else entirely")))
	})
}
