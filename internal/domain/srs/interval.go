// Package srs implements the spaced-repetition scheduling rules for
// vocabulary items: the interval curve that decides how far out the next
// review lands, and the state transitions applied after each practice attempt.
package srs

import "math"

// Caps and growth factors for the post-onboarding interval curve.
// The first three reviews use fixed onboarding steps of 1, 3 and 7 days;
// after that the interval grows geometrically, bounded by an accuracy band.
const (
	highAccuracyThreshold   = 0.9
	mediumAccuracyThreshold = 0.7

	highAccuracyCapDays   = 30
	mediumAccuracyCapDays = 14
	lowAccuracyDays       = 2

	highAccuracyBase   = 7.0
	highAccuracyGrowth = 1.5

	mediumAccuracyBase   = 3.0
	mediumAccuracyGrowth = 1.3
)

// NextIntervalDays maps a review count and lifetime accuracy to the number of
// days until the item's next scheduled review. Pure function, no side effects.
//
// reviewCount is the total number of recorded attempts including the one just
// made. The first three post-attempt intervals are fixed onboarding steps
// (1, 3, 7 days); beyond that the interval is a capped geometric curve chosen
// by accuracy band. The result is always at least 1.
func NextIntervalDays(reviewCount int, accuracy float64) int {
	switch {
	case reviewCount <= 1:
		// Covers the documented reviewCount == 0 point on the curve as well;
		// post-increment it is never reached.
		return 1
	case reviewCount == 2:
		return 3
	case reviewCount == 3:
		return 7
	}

	var days float64
	switch {
	case accuracy >= highAccuracyThreshold:
		days = math.Min(
			highAccuracyCapDays,
			highAccuracyBase*math.Pow(highAccuracyGrowth, float64(reviewCount-2)),
		)
	case accuracy >= mediumAccuracyThreshold:
		days = math.Min(
			mediumAccuracyCapDays,
			mediumAccuracyBase*math.Pow(mediumAccuracyGrowth, float64(reviewCount-2)),
		)
	default:
		days = lowAccuracyDays
	}

	interval := int(math.Floor(days))
	if interval < 1 {
		interval = 1
	}
	return interval
}
