package word_practice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mnemos/mnemos-api/internal/domain"
	"github.com/mnemos/mnemos-api/internal/domain/srs"
	"github.com/mnemos/mnemos-api/internal/platform/clock"
	"github.com/mnemos/mnemos-api/internal/platform/logger"
	"github.com/mnemos/mnemos-api/internal/practice"
	"github.com/mnemos/mnemos-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// Config bounds the inputs the service accepts.
type Config struct {
	// MaxHistoryDays caps GetProgressHistory windows.
	MaxHistoryDays int
}

type serviceImpl struct {
	db        *sql.DB
	vocab     store.VocabularyStore
	scheduler srs.Service
	selector  *practice.Selector
	clock     clock.Clock
	cfg       Config
	logger    *slog.Logger
}

// NewService creates the standard practice service implementation.
// db is required for the RecordAttempt transaction boundary; the remaining
// dependencies are injected for testability (fixed clock, no-op shuffler).
func NewService(
	db *sql.DB,
	vocab store.VocabularyStore,
	scheduler srs.Service,
	selector *practice.Selector,
	clk clock.Clock,
	cfg Config,
	log *slog.Logger,
) Service {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if vocab == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("vocab store cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}
	if selector == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("selector cannot be nil")
	}
	if clk == nil {
		clk = clock.System{}
	}
	if cfg.MaxHistoryDays <= 0 {
		cfg.MaxHistoryDays = 365
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		db:        db,
		vocab:     vocab,
		scheduler: scheduler,
		selector:  selector,
		clock:     clk,
		cfg:       cfg,
		logger:    log.With(slog.String("component", "practice_service")),
	}
}

// SelectForPractice implements Service.SelectForPractice.
func (s *serviceImpl) SelectForPractice(
	ctx context.Context,
	ownerID uuid.UUID,
	params SelectionParams,
) ([]*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if params.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if params.Difficulty != "" {
		if _, err := domain.ParseDifficulty(string(params.Difficulty)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}
	if params.ReviewStatus != "" {
		if _, err := domain.ParseReviewStatus(string(params.ReviewStatus)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}

	candidates, err := s.vocab.ListByOwner(ctx, ownerID, store.ListFilters{
		Difficulty:   params.Difficulty,
		ReviewStatus: params.ReviewStatus,
		Theme:        params.Theme,
	})
	if err != nil {
		log.Error("failed to list practice candidates",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, &ServiceError{
			Operation: "select_for_practice",
			Message:   "failed to list candidates",
			Err:       err,
		}
	}

	selected := s.selector.Select(candidates, params.Limit)

	log.Debug("practice session selected",
		slog.String("owner_id", ownerID.String()),
		slog.Int("candidates", len(candidates)),
		slog.Int("selected", len(selected)))
	return selected, nil
}

// RecordAttempt implements Service.RecordAttempt.
// The read-modify-write runs under a row lock so concurrent attempts on the
// same item serialize; attempts on different items proceed in parallel.
func (s *serviceImpl) RecordAttempt(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
	isCorrect bool,
) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.VocabularyItem
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txVocab := s.vocab.WithTx(tx)

		item, err := txVocab.GetByIDForUpdate(ctx, ownerID, itemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("failed to get vocabulary item: %w", err)
		}

		next, err := s.scheduler.ApplyAttempt(item, isCorrect, s.clock.Now())
		if err != nil {
			return fmt.Errorf("failed to apply attempt: %w", err)
		}

		if err := txVocab.UpdateReviewState(ctx, next); err != nil {
			return fmt.Errorf("failed to persist review state: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			log.Warn("attempt on unknown vocabulary item",
				slog.String("owner_id", ownerID.String()),
				slog.String("item_id", itemID.String()))
			return nil, ErrItemNotFound
		}
		log.Error("failed to record attempt",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("item_id", itemID.String()))
		return nil, &ServiceError{
			Operation: "record_attempt",
			Message:   "failed to record attempt",
			Err:       err,
		}
	}

	log.Debug("attempt recorded",
		slog.String("owner_id", ownerID.String()),
		slog.String("item_id", itemID.String()),
		slog.Bool("is_correct", isCorrect),
		slog.String("review_status", string(updated.ReviewStatus)),
		slog.Time("next_review_at", *updated.NextReviewAt))
	return updated, nil
}

// GetStatistics implements Service.GetStatistics.
func (s *serviceImpl) GetStatistics(
	ctx context.Context,
	ownerID uuid.UUID,
) (*practice.Statistics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := s.vocab.ListByOwner(ctx, ownerID, store.ListFilters{})
	if err != nil {
		log.Error("failed to list items for statistics",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, &ServiceError{
			Operation: "get_statistics",
			Message:   "failed to list items",
			Err:       err,
		}
	}

	return practice.ComputeStatistics(items, s.clock.Now()), nil
}

// GetProgressHistory implements Service.GetProgressHistory.
func (s *serviceImpl) GetProgressHistory(
	ctx context.Context,
	ownerID uuid.UUID,
	days int,
) (*practice.ProgressHistory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if days < 1 || days > s.cfg.MaxHistoryDays {
		return nil, ErrInvalidDays
	}

	items, err := s.vocab.ListByOwner(ctx, ownerID, store.ListFilters{})
	if err != nil {
		log.Error("failed to list items for progress history",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, &ServiceError{
			Operation: "get_progress_history",
			Message:   "failed to list items",
			Err:       err,
		}
	}

	return practice.ProjectHistory(items, days, s.clock.Now()), nil
}
