package practice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemos/mnemos-api/internal/domain"
)

// statsItem builds an item for statistics tests with full control over the
// fields the aggregator reads.
type statsItem struct {
	difficulty   domain.Difficulty
	status       domain.ReviewStatus
	themes       []string
	correct      int
	incorrect    int
	lastReviewed *time.Time
	nextReview   *time.Time
}

func buildStatsItems(specs []statsItem) []*domain.VocabularyItem {
	items := make([]*domain.VocabularyItem, 0, len(specs))
	for _, s := range specs {
		items = append(items, &domain.VocabularyItem{
			ID:             uuid.New(),
			OwnerID:        uuid.New(),
			Word:           "word",
			Difficulty:     s.difficulty,
			ReviewStatus:   s.status,
			Tags:           domain.Tags{Themes: s.themes},
			ReviewCount:    s.correct + s.incorrect,
			CorrectCount:   s.correct,
			IncorrectCount: s.incorrect,
			LastReviewedAt: s.lastReviewed,
			NextReviewAt:   s.nextReview,
		})
	}
	return items
}

func TestComputeStatistics_Empty(t *testing.T) {
	t.Parallel()

	stats := ComputeStatistics(nil, time.Now())

	assert.Zero(t, stats.TotalWords)
	assert.Zero(t, stats.LearningStreak)
	assert.Zero(t, stats.WordsDueForReview)
	assert.Zero(t, stats.TotalReviews)
	assert.Zero(t, stats.AccuracyRate)
	assert.Empty(t, stats.WordsByTag)

	// Every bucket is present even with no items.
	require.Len(t, stats.WordsByDifficulty, len(domain.Difficulties))
	require.Len(t, stats.WordsByReviewStatus, len(domain.ReviewStatuses))
	for _, d := range domain.Difficulties {
		assert.Zero(t, stats.WordsByDifficulty[d])
	}
	for _, rs := range domain.ReviewStatuses {
		assert.Zero(t, stats.WordsByReviewStatus[rs])
	}
}

func TestComputeStatistics_Buckets(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	items := buildStatsItems([]statsItem{
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusNew},
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 3, incorrect: 1},
		{difficulty: domain.DifficultyB2, status: domain.ReviewStatusMastered, correct: 9, incorrect: 1},
	})

	stats := ComputeStatistics(items, now)

	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, 2, stats.WordsByDifficulty[domain.DifficultyA1])
	assert.Equal(t, 1, stats.WordsByDifficulty[domain.DifficultyB2])
	assert.Zero(t, stats.WordsByDifficulty[domain.DifficultyC2])
	assert.Equal(t, 1, stats.WordsByReviewStatus[domain.ReviewStatusNew])
	assert.Equal(t, 1, stats.WordsByReviewStatus[domain.ReviewStatusLearning])
	assert.Equal(t, 1, stats.WordsByReviewStatus[domain.ReviewStatusMastered])
	assert.Equal(t, 14, stats.TotalReviews)
	// 12 correct of 14 attempts = 85.71%.
	assert.InDelta(t, 85.71, stats.AccuracyRate, 1e-9)
}

func TestComputeStatistics_Idempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	reviewed := now.Add(-2 * time.Hour)
	items := buildStatsItems([]statsItem{
		{
			difficulty:   domain.DifficultyB1,
			status:       domain.ReviewStatusLearning,
			themes:       []string{"travel"},
			correct:      2,
			incorrect:    1,
			lastReviewed: &reviewed,
			nextReview:   &now,
		},
	})

	first := ComputeStatistics(items, now)
	second := ComputeStatistics(items, now)
	assert.Equal(t, first, second)
}

func TestComputeStatistics_DueForReview(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	items := buildStatsItems([]statsItem{
		// Due: learning with next review in the past.
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, nextReview: &past},
		// Due: review status counts too.
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusReview, correct: 1, nextReview: &past},
		// Due: exactly now is due.
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, nextReview: &now},
		// Not due: next review in the future.
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, nextReview: &future},
		// Not due: mastered items are excluded even when overdue.
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusMastered, correct: 3, nextReview: &past},
		// Not due: new items have no schedule.
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusNew},
	})

	stats := ComputeStatistics(items, now)
	assert.Equal(t, 3, stats.WordsDueForReview)
}

func TestComputeStatistics_TagHistogram(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	items := buildStatsItems([]statsItem{
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusNew, themes: []string{"travel", "food"}},
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusNew, themes: []string{"food"}},
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusNew, themes: []string{"travel", "work"}},
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusNew, themes: []string{"food"}},
	})

	stats := ComputeStatistics(items, now)

	require.Len(t, stats.WordsByTag, 3)
	assert.Equal(t, TagCount{Tag: "food", Count: 3}, stats.WordsByTag[0])
	assert.Equal(t, TagCount{Tag: "travel", Count: 2}, stats.WordsByTag[1])
	assert.Equal(t, TagCount{Tag: "work", Count: 1}, stats.WordsByTag[2])
}

func TestComputeStatistics_TagTiesKeepFirstAppearance(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	items := buildStatsItems([]statsItem{
		{difficulty: domain.DifficultyA1, status: domain.ReviewStatusNew, themes: []string{"zoo", "art"}},
	})

	stats := ComputeStatistics(items, now)

	require.Len(t, stats.WordsByTag, 2)
	assert.Equal(t, "zoo", stats.WordsByTag[0].Tag)
	assert.Equal(t, "art", stats.WordsByTag[1].Tag)
}

func TestComputeStatistics_LearningStreak(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC)
	day := func(daysAgo int) *time.Time {
		ts := now.AddDate(0, 0, -daysAgo)
		return &ts
	}

	t.Run("consecutive days ending today", func(t *testing.T) {
		t.Parallel()
		items := buildStatsItems([]statsItem{
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(0)},
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(1)},
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(2)},
		})
		assert.Equal(t, 3, ComputeStatistics(items, now).LearningStreak)
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		t.Parallel()
		items := buildStatsItems([]statsItem{
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(0)},
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(2)},
		})
		assert.Equal(t, 1, ComputeStatistics(items, now).LearningStreak)
	})

	t.Run("no review today means zero streak", func(t *testing.T) {
		t.Parallel()
		items := buildStatsItems([]statsItem{
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(1)},
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(2)},
		})
		assert.Zero(t, ComputeStatistics(items, now).LearningStreak)
	})

	t.Run("multiple reviews on one day count once", func(t *testing.T) {
		t.Parallel()
		items := buildStatsItems([]statsItem{
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 1, lastReviewed: day(0)},
			{difficulty: domain.DifficultyA1, status: domain.ReviewStatusLearning, correct: 2, lastReviewed: day(0)},
		})
		assert.Equal(t, 1, ComputeStatistics(items, now).LearningStreak)
	})
}
