package practice

import (
	"math"
	"time"

	"github.com/mnemos/mnemos-api/internal/domain"
)

// ProgressPoint is one calendar day of reconstructed learning progress.
type ProgressPoint struct {
	Date          string                      `json:"date"` // YYYY-MM-DD
	TotalWords    int                         `json:"total_words"`
	WordsByStatus map[domain.ReviewStatus]int `json:"words_by_status"`
	PracticeCount int                         `json:"practice_count"`
	Accuracy      float64                     `json:"accuracy"`
}

// DateRange bounds a history window, inclusive on both ends.
type DateRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// ProgressHistory is the day-by-day progress reconstruction for a window of
// calendar days, in ascending date order.
type ProgressHistory struct {
	DataPoints []ProgressPoint `json:"data_points"`
	DateRange  DateRange       `json:"date_range"`
}

// ProjectHistory reconstructs an approximate progress history for the last
// `days` calendar days from the current snapshot of items. No practice ledger
// exists, so the projection is derived entirely from CreatedAt and
// LastReviewedAt: total words per day is exact, but each item's *current*
// review status is projected backward unchanged, and only the most recent
// practice of an item is visible. One data point is produced per day in
// [today-days, today] inclusive.
func ProjectHistory(
	items []*domain.VocabularyItem,
	days int,
	now time.Time,
) *ProgressHistory {
	end := startOfDay(now)
	start := end.AddDate(0, 0, -days)

	history := &ProgressHistory{
		DataPoints: make([]ProgressPoint, 0, days+1),
		DateRange: DateRange{
			Start: start.Format(time.DateOnly),
			End:   end.Format(time.DateOnly),
		},
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		point := ProgressPoint{
			Date:          day.Format(time.DateOnly),
			WordsByStatus: make(map[domain.ReviewStatus]int, len(domain.ReviewStatuses)),
		}
		for _, rs := range domain.ReviewStatuses {
			point.WordsByStatus[rs] = 0
		}

		dayEnd := day.AddDate(0, 0, 1)
		var accuracySum float64
		var accuracyCount int

		for _, item := range items {
			// Known by this date: created at any instant before the next day.
			if item.CreatedAt.UTC().Before(dayEnd) {
				point.TotalWords++
				point.WordsByStatus[item.ReviewStatus]++
			}

			if item.LastReviewedAt != nil && startOfDay(*item.LastReviewedAt).Equal(day) {
				point.PracticeCount++
				if item.ReviewCount > 0 {
					accuracySum += item.Accuracy()
					accuracyCount++
				}
			}
		}

		if accuracyCount > 0 {
			point.Accuracy = math.Round(accuracySum/float64(accuracyCount)*100) / 100
		}

		history.DataPoints = append(history.DataPoints, point)
	}

	return history
}
