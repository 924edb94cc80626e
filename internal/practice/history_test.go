package practice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnemos/mnemos-api/internal/domain"
)

func historyItem(
	created time.Time,
	status domain.ReviewStatus,
	correct, incorrect int,
	lastReviewed *time.Time,
) *domain.VocabularyItem {
	return &domain.VocabularyItem{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Word:           "word",
		Difficulty:     domain.DifficultyB1,
		ReviewStatus:   status,
		ReviewCount:    correct + incorrect,
		CorrectCount:   correct,
		IncorrectCount: incorrect,
		LastReviewedAt: lastReviewed,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

func TestProjectHistory_WindowShape(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	history := ProjectHistory(nil, 7, now)

	// One point per day, inclusive on both ends.
	require.Len(t, history.DataPoints, 8)
	assert.Equal(t, "2025-06-08", history.DateRange.Start)
	assert.Equal(t, "2025-06-15", history.DateRange.End)
	assert.Equal(t, "2025-06-08", history.DataPoints[0].Date)
	assert.Equal(t, "2025-06-15", history.DataPoints[7].Date)

	// Dates ascend strictly.
	for i := 1; i < len(history.DataPoints); i++ {
		assert.Less(t, history.DataPoints[i-1].Date, history.DataPoints[i].Date)
	}
}

func TestProjectHistory_TotalWordsGrowth(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	items := []*domain.VocabularyItem{
		historyItem(now.AddDate(0, 0, -10), domain.ReviewStatusLearning, 2, 1, nil),
		historyItem(now.AddDate(0, 0, -3), domain.ReviewStatusNew, 0, 0, nil),
		historyItem(now.AddDate(0, 0, -1), domain.ReviewStatusNew, 0, 0, nil),
	}

	history := ProjectHistory(items, 5, now)
	require.Len(t, history.DataPoints, 6)

	// Day -5 .. -4: only the oldest item exists.
	assert.Equal(t, 1, history.DataPoints[0].TotalWords)
	assert.Equal(t, 1, history.DataPoints[1].TotalWords)
	// Day -3: second item appears.
	assert.Equal(t, 2, history.DataPoints[2].TotalWords)
	// Day -1 and today: all three.
	assert.Equal(t, 3, history.DataPoints[4].TotalWords)
	assert.Equal(t, 3, history.DataPoints[5].TotalWords)

	// Totals never decrease over the window.
	for i := 1; i < len(history.DataPoints); i++ {
		assert.GreaterOrEqual(t,
			history.DataPoints[i].TotalWords,
			history.DataPoints[i-1].TotalWords)
	}
}

func TestProjectHistory_PracticeCountAndAccuracy(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	twoDaysAgo := now.AddDate(0, 0, -2)
	created := now.AddDate(0, 0, -30)

	items := []*domain.VocabularyItem{
		// Practiced two days ago, 75% lifetime accuracy.
		historyItem(created, domain.ReviewStatusLearning, 3, 1, &twoDaysAgo),
		// Practiced the same day, 50% lifetime accuracy.
		historyItem(created, domain.ReviewStatusLearning, 2, 2, &twoDaysAgo),
		// Never practiced.
		historyItem(created, domain.ReviewStatusNew, 0, 0, nil),
	}

	history := ProjectHistory(items, 5, now)
	require.Len(t, history.DataPoints, 6)

	// Index 3 is two days before the window end.
	point := history.DataPoints[3]
	assert.Equal(t, "2025-06-13", point.Date)
	assert.Equal(t, 2, point.PracticeCount)
	assert.InDelta(t, 0.63, point.Accuracy, 1e-9) // mean of 0.75 and 0.5, rounded

	// Days without practice report zero.
	assert.Zero(t, history.DataPoints[0].PracticeCount)
	assert.Zero(t, history.DataPoints[0].Accuracy)
}

func TestProjectHistory_StatusBucketsAlwaysPresent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	items := []*domain.VocabularyItem{
		historyItem(now.AddDate(0, 0, -1), domain.ReviewStatusMastered, 5, 1, nil),
	}

	history := ProjectHistory(items, 2, now)
	for _, point := range history.DataPoints {
		require.Len(t, point.WordsByStatus, len(domain.ReviewStatuses))
	}

	today := history.DataPoints[len(history.DataPoints)-1]
	assert.Equal(t, 1, today.WordsByStatus[domain.ReviewStatusMastered])
	assert.Zero(t, today.WordsByStatus[domain.ReviewStatusNew])
}

func TestProjectHistory_ItemsOutsideWindowIgnoredForPractice(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	longAgo := now.AddDate(0, 0, -100)

	items := []*domain.VocabularyItem{
		historyItem(longAgo, domain.ReviewStatusLearning, 4, 2, &longAgo),
	}

	history := ProjectHistory(items, 7, now)
	for _, point := range history.DataPoints {
		// The item still counts toward totals but its practice predates the window.
		assert.Equal(t, 1, point.TotalWords)
		assert.Zero(t, point.PracticeCount)
	}
}
