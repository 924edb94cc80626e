package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the CEFR proficiency tier assigned to a vocabulary item.
// It is used purely as an ordinal difficulty tag.
type Difficulty string

// Possible difficulty values, lowest to highest.
const (
	DifficultyA1 Difficulty = "A1"
	DifficultyA2 Difficulty = "A2"
	DifficultyB1 Difficulty = "B1"
	DifficultyB2 Difficulty = "B2"
	DifficultyC1 Difficulty = "C1"
	DifficultyC2 Difficulty = "C2"
)

// Difficulties lists all valid difficulty values in ascending order.
// The order is significant for statistics bucketing.
var Difficulties = []Difficulty{
	DifficultyA1,
	DifficultyA2,
	DifficultyB1,
	DifficultyB2,
	DifficultyC1,
	DifficultyC2,
}

// ReviewStatus is the coarse mastery state of a vocabulary item.
type ReviewStatus string

// Possible review status values.
const (
	ReviewStatusNew      ReviewStatus = "new"
	ReviewStatusLearning ReviewStatus = "learning"
	ReviewStatusMastered ReviewStatus = "mastered"
	ReviewStatusReview   ReviewStatus = "review"
)

// ReviewStatuses lists all valid review status values.
var ReviewStatuses = []ReviewStatus{
	ReviewStatusNew,
	ReviewStatusLearning,
	ReviewStatusMastered,
	ReviewStatusReview,
}

// Vocabulary-specific validation errors. All of them wrap ErrValidation.
var (
	// ErrVocabularyIDEmpty is returned when a vocabulary item ID is empty or nil.
	ErrVocabularyIDEmpty = fmt.Errorf("%w: vocabulary item ID cannot be empty", ErrValidation)

	// ErrVocabularyOwnerIDEmpty is returned when an item's owner ID is empty or nil.
	ErrVocabularyOwnerIDEmpty = fmt.Errorf(
		"%w: vocabulary item owner ID cannot be empty",
		ErrValidation,
	)

	// ErrVocabularyWordEmpty is returned when an item's word is empty.
	ErrVocabularyWordEmpty = fmt.Errorf("%w: vocabulary item word cannot be empty", ErrValidation)

	// ErrInvalidDifficulty is returned when a difficulty value is not a known CEFR level.
	ErrInvalidDifficulty = fmt.Errorf("%w: invalid difficulty level", ErrValidation)

	// ErrInvalidReviewStatus is returned when a review status value is not recognized.
	ErrInvalidReviewStatus = fmt.Errorf("%w: invalid review status", ErrValidation)

	// ErrNegativeReviewCounts is returned when any review counter is negative.
	ErrNegativeReviewCounts = fmt.Errorf("%w: review counters cannot be negative", ErrValidation)

	// ErrInconsistentReviewCounts is returned when correct + incorrect does not
	// equal the total review count.
	ErrInconsistentReviewCounts = fmt.Errorf(
		"%w: correct and incorrect counts must sum to review count",
		ErrValidation,
	)
)

// ParseDifficulty validates a raw difficulty string.
// Returns ErrInvalidDifficulty for unknown values.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", ErrInvalidDifficulty
}

// ParseReviewStatus validates a raw review status string.
// Returns ErrInvalidReviewStatus for unknown values.
func ParseReviewStatus(s string) (ReviewStatus, error) {
	rs := ReviewStatus(s)
	for _, known := range ReviewStatuses {
		if rs == known {
			return rs, nil
		}
	}
	return "", ErrInvalidReviewStatus
}

// Tags groups the free-form category labels attached to a vocabulary item.
// Themes are the only labels the scheduling engine consumes.
type Tags struct {
	Themes []string `json:"themes"`
}

// VocabularyItem is a single user-owned learning word or phrase together with
// its spaced-repetition review state. The review fields (status, counters,
// timestamps) are mutated exclusively by the srs package during practice;
// everything else is content owned by external collaborators.
type VocabularyItem struct {
	ID             uuid.UUID    `json:"id"`
	OwnerID        uuid.UUID    `json:"owner_id"`
	Word           string       `json:"word"`
	Meaning        string       `json:"meaning,omitempty"`
	Phonetic       string       `json:"phonetic,omitempty"`
	Tags           Tags         `json:"tags"`
	Difficulty     Difficulty   `json:"difficulty"`
	ReviewStatus   ReviewStatus `json:"review_status"`
	ReviewCount    int          `json:"review_count"`
	CorrectCount   int          `json:"correct_count"`
	IncorrectCount int          `json:"incorrect_count"`
	LastReviewedAt *time.Time   `json:"last_reviewed_at,omitempty"`
	NextReviewAt   *time.Time   `json:"next_review_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewVocabularyItem creates a vocabulary item with all review fields at their
// zero defaults: status "new", zero counters, no review timestamps. Items
// enter the system this way and only practice attempts move them forward.
// Returns an error if validation fails.
func NewVocabularyItem(
	ownerID uuid.UUID,
	word string,
	difficulty Difficulty,
) (*VocabularyItem, error) {
	now := time.Now().UTC()
	item := &VocabularyItem{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Word:         word,
		Difficulty:   difficulty,
		ReviewStatus: ReviewStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the VocabularyItem has valid data.
// Returns an error if any field fails validation.
func (v *VocabularyItem) Validate() error {
	if v.ID == uuid.Nil {
		return ErrVocabularyIDEmpty
	}

	if v.OwnerID == uuid.Nil {
		return ErrVocabularyOwnerIDEmpty
	}

	if v.Word == "" {
		return ErrVocabularyWordEmpty
	}

	if _, err := ParseDifficulty(string(v.Difficulty)); err != nil {
		return err
	}

	if _, err := ParseReviewStatus(string(v.ReviewStatus)); err != nil {
		return err
	}

	if v.ReviewCount < 0 || v.CorrectCount < 0 || v.IncorrectCount < 0 {
		return ErrNegativeReviewCounts
	}

	if v.CorrectCount+v.IncorrectCount != v.ReviewCount {
		return ErrInconsistentReviewCounts
	}

	return nil
}

// Accuracy returns the item's lifetime answer accuracy in [0, 1].
// Items with no recorded attempts have an accuracy of 0.
func (v *VocabularyItem) Accuracy() float64 {
	attempts := v.CorrectCount + v.IncorrectCount
	if attempts == 0 {
		return 0
	}
	return float64(v.CorrectCount) / float64(attempts)
}

// Clone returns a deep copy of the item. The srs package uses this to apply
// review updates immutably instead of mutating the stored instance.
func (v *VocabularyItem) Clone() *VocabularyItem {
	clone := *v
	if v.LastReviewedAt != nil {
		t := *v.LastReviewedAt
		clone.LastReviewedAt = &t
	}
	if v.NextReviewAt != nil {
		t := *v.NextReviewAt
		clone.NextReviewAt = &t
	}
	if v.Tags.Themes != nil {
		clone.Tags.Themes = append([]string(nil), v.Tags.Themes...)
	}
	return &clone
}
