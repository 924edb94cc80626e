package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mnemos/mnemos-api/internal/domain"
)

// ListFilters narrows the candidate set returned by ListByOwner.
// Zero-value fields are ignored; set fields must already be validated enums.
type ListFilters struct {
	Difficulty   domain.Difficulty
	ReviewStatus domain.ReviewStatus
	Theme        string
}

// VocabularyStore defines the interface for vocabulary item persistence.
// All read and write operations are scoped to an owner ID; an item belonging
// to a different owner is indistinguishable from a missing one.
type VocabularyStore interface {
	// Create saves a new vocabulary item.
	// Returns validation errors from the domain item if data is invalid,
	// or ErrDuplicate if the ID already exists.
	Create(ctx context.Context, item *domain.VocabularyItem) error

	// GetByID retrieves an item by owner and item ID.
	// Returns ErrVocabularyNotFound if no such item exists for this owner.
	// No row locking is taken; do not use this when you plan to update the
	// row under concurrent practice attempts.
	GetByID(ctx context.Context, ownerID, itemID uuid.UUID) (*domain.VocabularyItem, error)

	// GetByIDForUpdate retrieves an item with a row-level lock
	// (SELECT ... FOR UPDATE). This must be used within a transaction when
	// recording a practice attempt: it serializes concurrent attempts on the
	// same item while leaving attempts on different items fully independent.
	// Returns ErrVocabularyNotFound if no such item exists for this owner.
	GetByIDForUpdate(
		ctx context.Context,
		ownerID, itemID uuid.UUID,
	) (*domain.VocabularyItem, error)

	// ListByOwner retrieves all of an owner's items matching the filters,
	// ordered by creation time ascending.
	ListByOwner(
		ctx context.Context,
		ownerID uuid.UUID,
		filters ListFilters,
	) ([]*domain.VocabularyItem, error)

	// UpdateReviewState persists only the tracker-owned fields of the item:
	// review status, the three counters, the two review timestamps and
	// UpdatedAt. Content fields are never written by this method.
	// Returns ErrVocabularyNotFound if the item does not exist for its owner.
	UpdateReviewState(ctx context.Context, item *domain.VocabularyItem) error

	// WithTx returns a VocabularyStore bound to the provided transaction so
	// multiple operations can share one transaction boundary. The transaction
	// is created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) VocabularyStore
}
