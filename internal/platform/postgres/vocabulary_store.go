package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mnemos/mnemos-api/internal/domain"
	"github.com/mnemos/mnemos-api/internal/platform/logger"
	"github.com/mnemos/mnemos-api/internal/store"
)

// vocabularyColumns is the column list shared by every SELECT in this store.
const vocabularyColumns = `
	id, owner_id, word, meaning, phonetic, tags, difficulty, review_status,
	review_count, correct_count, incorrect_count,
	last_reviewed_at, next_review_at, created_at, updated_at`

// PostgresVocabularyStore implements the store.VocabularyStore interface
// using a PostgreSQL database as the storage backend.
type PostgresVocabularyStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresVocabularyStore creates a new PostgreSQL implementation of the
// VocabularyStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresVocabularyStore(db store.DBTX, logger *slog.Logger) *PostgresVocabularyStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVocabularyStore{
		db:     db,
		logger: logger.With(slog.String("component", "vocabulary_store")),
	}
}

// Ensure PostgresVocabularyStore implements store.VocabularyStore interface
var _ store.VocabularyStore = (*PostgresVocabularyStore)(nil)

// WithTx implements store.VocabularyStore.WithTx
func (s *PostgresVocabularyStore) WithTx(tx *sql.Tx) store.VocabularyStore {
	return &PostgresVocabularyStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.VocabularyStore.Create
// It saves a new vocabulary item, handling domain validation.
func (s *PostgresVocabularyStore) Create(
	ctx context.Context,
	item *domain.VocabularyItem,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("vocabulary item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO vocabulary_items (` + vocabularyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.OwnerID,
		item.Word,
		item.Meaning,
		item.Phonetic,
		tags,
		item.Difficulty,
		item.ReviewStatus,
		item.ReviewCount,
		item.CorrectCount,
		item.IncorrectCount,
		item.LastReviewedAt,
		item.NextReviewAt,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()),
			slog.String("owner_id", item.OwnerID.String()))
		return MapError(err)
	}

	log.Debug("vocabulary item created",
		slog.String("item_id", item.ID.String()),
		slog.String("owner_id", item.OwnerID.String()))
	return nil
}

// GetByID implements store.VocabularyStore.GetByID
// Returns store.ErrVocabularyNotFound when no row matches both IDs, so a
// cross-owner lookup is indistinguishable from a missing item.
func (s *PostgresVocabularyStore) GetByID(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
) (*domain.VocabularyItem, error) {
	return s.getByID(ctx, ownerID, itemID, false)
}

// GetByIDForUpdate implements store.VocabularyStore.GetByIDForUpdate
// It takes a row-level lock; callers must hold an open transaction.
func (s *PostgresVocabularyStore) GetByIDForUpdate(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
) (*domain.VocabularyItem, error) {
	return s.getByID(ctx, ownerID, itemID, true)
}

func (s *PostgresVocabularyStore) getByID(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
	forUpdate bool,
) (*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary_items
		WHERE id = $1 AND owner_id = $2
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	row := s.db.QueryRowContext(ctx, query, itemID, ownerID)
	item, err := scanVocabularyItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("vocabulary item not found",
				slog.String("item_id", itemID.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrVocabularyNotFound
		}
		log.Error("failed to get vocabulary item",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID.String()))
		return nil, MapError(err)
	}

	return item, nil
}

// ListByOwner implements store.VocabularyStore.ListByOwner
// Optional filters are appended as additional WHERE clauses; results are
// ordered by creation time ascending.
func (s *PostgresVocabularyStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filters store.ListFilters,
) ([]*domain.VocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary_items
		WHERE owner_id = $1
	`
	args := []any{ownerID}

	if filters.Difficulty != "" {
		args = append(args, filters.Difficulty)
		query += fmt.Sprintf(" AND difficulty = $%d", len(args))
	}
	if filters.ReviewStatus != "" {
		args = append(args, filters.ReviewStatus)
		query += fmt.Sprintf(" AND review_status = $%d", len(args))
	}
	if filters.Theme != "" {
		args = append(args, filters.Theme)
		query += fmt.Sprintf(" AND tags->'themes' ? $%d", len(args))
	}

	query += " ORDER BY created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list vocabulary items",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.VocabularyItem
	for rows.Next() {
		item, err := scanVocabularyItem(rows)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// UpdateReviewState implements store.VocabularyStore.UpdateReviewState
// Only the tracker-owned review fields are written; content columns are
// untouched by practice.
func (s *PostgresVocabularyStore) UpdateReviewState(
	ctx context.Context,
	item *domain.VocabularyItem,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("vocabulary item validation failed during review update",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE vocabulary_items
		SET review_status = $1,
		    review_count = $2,
		    correct_count = $3,
		    incorrect_count = $4,
		    last_reviewed_at = $5,
		    next_review_at = $6,
		    updated_at = $7
		WHERE id = $8 AND owner_id = $9
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		item.ReviewStatus,
		item.ReviewCount,
		item.CorrectCount,
		item.IncorrectCount,
		item.LastReviewedAt,
		item.NextReviewAt,
		item.UpdatedAt,
		item.ID,
		item.OwnerID,
	)
	if err != nil {
		log.Error("failed to update review state",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "vocabulary item"); err != nil {
		return store.ErrVocabularyNotFound
	}

	log.Debug("review state updated",
		slog.String("item_id", item.ID.String()),
		slog.String("review_status", string(item.ReviewStatus)))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanVocabularyItem reads one vocabulary row into a domain item,
// unmarshalling the JSONB tags column and normalizing nullable timestamps.
func scanVocabularyItem(row rowScanner) (*domain.VocabularyItem, error) {
	var item domain.VocabularyItem
	var tags []byte
	var lastReviewedAt, nextReviewAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Word,
		&item.Meaning,
		&item.Phonetic,
		&tags,
		&item.Difficulty,
		&item.ReviewStatus,
		&item.ReviewCount,
		&item.CorrectCount,
		&item.IncorrectCount,
		&lastReviewedAt,
		&nextReviewAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &item.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	if lastReviewedAt.Valid {
		t := lastReviewedAt.Time.UTC()
		item.LastReviewedAt = &t
	}
	if nextReviewAt.Valid {
		t := nextReviewAt.Time.UTC()
		item.NextReviewAt = &t
	}

	return &item, nil
}
