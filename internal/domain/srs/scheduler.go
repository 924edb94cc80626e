package srs

import (
	"errors"
	"time"

	"github.com/mnemos/mnemos-api/internal/domain"
)

// Common errors
var (
	ErrNilItem = errors.New("vocabulary item cannot be nil")
)

// Thresholds for the mastery transition rules.
const (
	masteryAccuracy      = 0.8
	masteryMinAttempts   = 3
	practicedEnoughCount = 30
)

// Service defines the interface for review scheduling operations.
type Service interface {
	// ApplyAttempt computes the item's state after one practice attempt:
	// counters, review status, last/next review timestamps. It returns a new
	// item copy and never mutates its argument.
	ApplyAttempt(
		item *domain.VocabularyItem,
		isCorrect bool,
		now time.Time,
	) (*domain.VocabularyItem, error)
}

type defaultService struct{}

// NewService creates the standard scheduling service.
func NewService() Service {
	return defaultService{}
}

// ApplyAttempt implements the Service interface.
func (defaultService) ApplyAttempt(
	item *domain.VocabularyItem,
	isCorrect bool,
	now time.Time,
) (*domain.VocabularyItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	next := item.Clone()

	next.ReviewCount++
	if isCorrect {
		next.CorrectCount++
	} else {
		next.IncorrectCount++
	}

	accuracy := next.Accuracy()
	next.ReviewStatus = nextStatus(item.ReviewStatus, next.ReviewCount, accuracy, isCorrect)

	reviewedAt := now.UTC()
	nextReviewAt := reviewedAt.AddDate(0, 0, NextIntervalDays(next.ReviewCount, accuracy))
	next.LastReviewedAt = &reviewedAt
	next.NextReviewAt = &nextReviewAt
	next.UpdatedAt = reviewedAt

	return next, nil
}

// nextStatus applies the status transition rules in their fixed precedence.
// Statuses move monotonically along new → learning → (mastered ⇄ review);
// mastered regresses to review only on an incorrect attempt.
func nextStatus(
	current domain.ReviewStatus,
	reviewCount int,
	accuracy float64,
	isCorrect bool,
) domain.ReviewStatus {
	switch {
	case reviewCount >= practicedEnoughCount && accuracy >= masteryAccuracy:
		return domain.ReviewStatusMastered
	case accuracy >= masteryAccuracy && reviewCount >= masteryMinAttempts:
		return domain.ReviewStatusMastered
	case current == domain.ReviewStatusNew:
		return domain.ReviewStatusLearning
	case current == domain.ReviewStatusMastered && !isCorrect:
		return domain.ReviewStatusReview
	default:
		return current
	}
}
