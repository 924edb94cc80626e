// Package word_practice exposes the practice engine to the API layer:
// session selection, attempt recording, statistics, and progress history.
package word_practice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mnemos/mnemos-api/internal/domain"
	"github.com/mnemos/mnemos-api/internal/practice"
)

// SelectionParams narrows and bounds a practice session request.
// Limit must be positive; the filters are optional.
type SelectionParams struct {
	Limit        int
	Difficulty   domain.Difficulty
	ReviewStatus domain.ReviewStatus
	Theme        string
}

// Service provides the four practice operations consumed by the API.
// All operations are scoped to the owner ID and synchronous; the reads
// tolerate a concurrently in-flight RecordAttempt producing a slightly
// stale view.
type Service interface {
	// SelectForPractice returns at most params.Limit items for a session,
	// chosen by priority score and shuffled.
	//
	// Returns:
	//   - (items, nil): The selection, possibly empty when the owner has no
	//     matching items
	//   - (nil, ErrInvalidLimit): If params.Limit <= 0
	//   - (nil, error): Any store error, surfaced unmodified
	SelectForPractice(
		ctx context.Context,
		ownerID uuid.UUID,
		params SelectionParams,
	) ([]*domain.VocabularyItem, error)

	// RecordAttempt records one practice attempt on an item and reschedules
	// it. The counter update, status transition and both timestamps commit
	// atomically; concurrent attempts on the same item are serialized by a
	// row lock inside the transaction.
	//
	// Returns:
	//   - (item, nil): The updated item
	//   - (nil, ErrItemNotFound): If the item does not exist or belongs to a
	//     different owner
	//   - (nil, error): Any store error, surfaced unmodified; no retries
	RecordAttempt(
		ctx context.Context,
		ownerID, itemID uuid.UUID,
		isCorrect bool,
	) (*domain.VocabularyItem, error)

	// GetStatistics computes the owner's statistics snapshot, fresh on every
	// call.
	GetStatistics(ctx context.Context, ownerID uuid.UUID) (*practice.Statistics, error)

	// GetProgressHistory reconstructs day-by-day progress for the last
	// `days` calendar days. Returns ErrInvalidDays unless 1 <= days <= the
	// configured maximum.
	GetProgressHistory(
		ctx context.Context,
		ownerID uuid.UUID,
		days int,
	) (*practice.ProgressHistory, error)
}

// Common error types for the practice service
var (
	// ErrItemNotFound indicates the vocabulary item does not exist for the
	// requesting owner.
	ErrItemNotFound = errors.New("vocabulary item not found")

	// ErrInvalidLimit indicates a non-positive session limit.
	ErrInvalidLimit = errors.New("practice limit must be positive")

	// ErrInvalidDays indicates a history window outside the allowed range.
	ErrInvalidDays = errors.New("history days out of range")

	// ErrInvalidFilter indicates an unknown difficulty or review status
	// filter value. Rejected before any store access.
	ErrInvalidFilter = errors.New("invalid filter value")
)

// ServiceError wraps errors from the practice service with operation context,
// so consumers can differentiate failures with errors.As instead of string
// matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_attempt")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
