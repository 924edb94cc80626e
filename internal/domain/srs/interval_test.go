package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIntervalDays_Onboarding(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		reviewCount int
		accuracy    float64
		expected    int
	}{
		{
			name:        "first review is always one day regardless of accuracy",
			reviewCount: 1,
			accuracy:    0.0,
			expected:    1,
		},
		{
			name:        "second review is three days",
			reviewCount: 2,
			accuracy:    0.5,
			expected:    3,
		},
		{
			name:        "third review is seven days even at perfect accuracy",
			reviewCount: 3,
			accuracy:    1.0,
			expected:    7,
		},
		{
			name:        "zero review count falls back to one day",
			reviewCount: 0,
			accuracy:    1.0,
			expected:    1,
		},
		{
			name:        "negative review count falls back to one day",
			reviewCount: -1,
			accuracy:    1.0,
			expected:    1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, NextIntervalDays(tc.reviewCount, tc.accuracy))
		})
	}
}

func TestNextIntervalDays_AccuracyBands(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		reviewCount int
		accuracy    float64
		expected    int
	}{
		{
			name:        "high accuracy fourth review",
			reviewCount: 4,
			accuracy:    0.95,
			expected:    15, // floor(7 * 1.5^2)
		},
		{
			name:        "high accuracy fifth review",
			reviewCount: 5,
			accuracy:    0.9,
			expected:    23, // floor(7 * 1.5^3)
		},
		{
			name:        "high accuracy hits the 30 day cap",
			reviewCount: 6,
			accuracy:    1.0,
			expected:    30, // 7 * 1.5^4 = 35.4 capped
		},
		{
			name:        "high accuracy stays capped at 30 days",
			reviewCount: 50,
			accuracy:    1.0,
			expected:    30,
		},
		{
			name:        "medium accuracy fourth review",
			reviewCount: 4,
			accuracy:    0.75,
			expected:    5, // floor(3 * 1.3^2)
		},
		{
			name:        "medium accuracy at threshold",
			reviewCount: 5,
			accuracy:    0.7,
			expected:    6, // floor(3 * 1.3^3)
		},
		{
			name:        "medium accuracy hits the 14 day cap",
			reviewCount: 9,
			accuracy:    0.8,
			expected:    14, // 3 * 1.3^7 = 18.8 capped
		},
		{
			name:        "low accuracy is a flat two days",
			reviewCount: 4,
			accuracy:    0.5,
			expected:    2,
		},
		{
			name:        "low accuracy stays flat with many reviews",
			reviewCount: 40,
			accuracy:    0.69,
			expected:    2,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, NextIntervalDays(tc.reviewCount, tc.accuracy))
		})
	}
}

func TestNextIntervalDays_Bounds(t *testing.T) {
	t.Parallel()

	// The interval never drops below one day and never exceeds the high
	// accuracy cap, across the entire plausible input range.
	for reviewCount := 0; reviewCount <= 100; reviewCount++ {
		for _, accuracy := range []float64{0, 0.25, 0.5, 0.7, 0.75, 0.9, 0.95, 1} {
			interval := NextIntervalDays(reviewCount, accuracy)
			assert.GreaterOrEqual(t, interval, 1,
				"reviewCount=%d accuracy=%v", reviewCount, accuracy)
			assert.LessOrEqual(t, interval, highAccuracyCapDays,
				"reviewCount=%d accuracy=%v", reviewCount, accuracy)
		}
	}
}

func TestNextIntervalDays_HighAccuracyMonotonic(t *testing.T) {
	t.Parallel()

	// At high accuracy the curve never shrinks as the review count grows.
	prev := NextIntervalDays(1, 0.95)
	for reviewCount := 2; reviewCount <= 60; reviewCount++ {
		interval := NextIntervalDays(reviewCount, 0.95)
		assert.GreaterOrEqual(t, interval, prev, "reviewCount=%d", reviewCount)
		prev = interval
	}
}
