package practice

import (
	"sort"

	"github.com/mnemos/mnemos-api/internal/domain"
)

// Dampening factors for well-practiced items. Both compose multiplicatively,
// so a high-accuracy item with 30+ reviews keeps only 3% of its raw score:
// selected rarely, but never excluded.
const (
	wellKnownDampener       = 0.3 // reviewCount > 10 and accuracy > 0.9
	practicedEnoughDampener = 0.1 // reviewCount >= 30
)

const (
	wellKnownReviewCount   = 10
	wellKnownAccuracy      = 0.9
	practicedEnoughReviews = 30
)

// Selector picks a bounded, partially randomized set of items for a practice
// session, weighted toward items with few attempts and low accuracy.
type Selector struct {
	shuffler Shuffler
}

// NewSelector creates a Selector using the given randomness source.
func NewSelector(shuffler Shuffler) *Selector {
	if shuffler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("shuffler cannot be nil for Selector")
	}
	return &Selector{shuffler: shuffler}
}

// PriorityScore computes the selection weight for one item. Higher score
// means the item is more likely to appear in a session.
func PriorityScore(item *domain.VocabularyItem) float64 {
	accuracy := item.Accuracy()

	// Inverse of attempt count, +1 to avoid division by zero; an unseen item
	// starts at the maximum base priority.
	basePriority := 1 / float64(item.ReviewCount+1)

	// Lower accuracy pushes the score up: 0% accuracy doubles the base.
	accuracyFactor := 1 - accuracy

	score := basePriority * (1 + accuracyFactor)

	if item.ReviewCount > wellKnownReviewCount && accuracy > wellKnownAccuracy {
		score *= wellKnownDampener
	}
	if item.ReviewCount >= practicedEnoughReviews {
		score *= practicedEnoughDampener
	}

	return score
}

// Select scores the candidates, keeps the top limit by score, and shuffles
// only that selected sublist so repeated sessions over identical state do not
// drill in a fixed order. If fewer candidates than limit exist, all are
// returned (still shuffled). The input slice is not modified.
func (s *Selector) Select(
	candidates []*domain.VocabularyItem,
	limit int,
) []*domain.VocabularyItem {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	type scored struct {
		item  *domain.VocabularyItem
		score float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, item := range candidates {
		ranked = append(ranked, scored{item: item, score: PriorityScore(item)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}

	selected := make([]*domain.VocabularyItem, limit)
	for i := 0; i < limit; i++ {
		selected[i] = ranked[i].item
	}

	s.shuffler.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	return selected
}
