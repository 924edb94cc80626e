package practice

import (
	"math"
	"time"

	"github.com/mnemos/mnemos-api/internal/domain"
)

// TagCount is one entry of the per-tag histogram.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Statistics is a point-in-time rollup over an owner's vocabulary set.
// It is recomputed fresh on every call; there is no caching layer.
type Statistics struct {
	TotalWords          int                         `json:"total_words"`
	WordsByDifficulty   map[domain.Difficulty]int   `json:"words_by_difficulty"`
	WordsByReviewStatus map[domain.ReviewStatus]int `json:"words_by_review_status"`
	WordsByTag          []TagCount                  `json:"words_by_tag"`
	LearningStreak      int                         `json:"learning_streak"`
	WordsDueForReview   int                         `json:"words_due_for_review"`
	TotalReviews        int                         `json:"total_reviews"`
	AccuracyRate        float64                     `json:"accuracy_rate"`
}

// ComputeStatistics builds the full statistics snapshot for the given items.
// now fixes the reference instant for the streak walk and the due-for-review
// cutoff; all calendar arithmetic uses UTC days.
func ComputeStatistics(items []*domain.VocabularyItem, now time.Time) *Statistics {
	stats := &Statistics{
		TotalWords:          len(items),
		WordsByDifficulty:   make(map[domain.Difficulty]int, len(domain.Difficulties)),
		WordsByReviewStatus: make(map[domain.ReviewStatus]int, len(domain.ReviewStatuses)),
	}

	// Every bucket is present in the output even when empty.
	for _, d := range domain.Difficulties {
		stats.WordsByDifficulty[d] = 0
	}
	for _, rs := range domain.ReviewStatuses {
		stats.WordsByReviewStatus[rs] = 0
	}

	now = now.UTC()
	tagCounts := make(map[string]int)
	tagOrder := make([]string, 0)
	reviewedDays := make(map[time.Time]struct{})
	var totalCorrect, totalIncorrect int

	for _, item := range items {
		stats.WordsByDifficulty[item.Difficulty]++
		stats.WordsByReviewStatus[item.ReviewStatus]++

		for _, tag := range item.Tags.Themes {
			if _, seen := tagCounts[tag]; !seen {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}

		if item.LastReviewedAt != nil {
			reviewedDays[startOfDay(*item.LastReviewedAt)] = struct{}{}
		}

		if item.NextReviewAt != nil && !item.NextReviewAt.After(now) &&
			(item.ReviewStatus == domain.ReviewStatusLearning ||
				item.ReviewStatus == domain.ReviewStatusReview) {
			stats.WordsDueForReview++
		}

		stats.TotalReviews += item.ReviewCount
		totalCorrect += item.CorrectCount
		totalIncorrect += item.IncorrectCount
	}

	stats.WordsByTag = sortTagCounts(tagCounts, tagOrder)
	stats.LearningStreak = learningStreak(reviewedDays, now)

	if totalCorrect+totalIncorrect > 0 {
		rate := float64(totalCorrect) / float64(totalCorrect+totalIncorrect) * 100
		stats.AccuracyRate = math.Round(rate*100) / 100
	}

	return stats
}

// sortTagCounts orders the tag histogram by descending count. Ties keep the
// stable first-appearance order of the scan.
func sortTagCounts(counts map[string]int, order []string) []TagCount {
	result := make([]TagCount, 0, len(order))
	for _, tag := range order {
		result = append(result, TagCount{Tag: tag, Count: counts[tag]})
	}

	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].Count > result[j-1].Count; j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}

	return result
}

// learningStreak counts consecutive calendar days with at least one reviewed
// item, walking strictly backward from today. A day without reviews ends the
// streak, so a streak of zero means nothing was reviewed today.
func learningStreak(reviewedDays map[time.Time]struct{}, now time.Time) int {
	streak := 0
	for day := startOfDay(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := reviewedDays[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
