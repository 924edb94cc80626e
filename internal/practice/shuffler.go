// Package practice implements the read-side of the practice engine: priority
// selection of items for a session, point-in-time statistics rollups, and the
// day-by-day progress history projection. Everything here operates on a
// snapshot of the owner's vocabulary set already fetched from the store.
package practice

import "math/rand"

// Shuffler abstracts the randomness source used to permute a practice
// selection. Production wiring uses a seeded math/rand source; tests inject
// NoopShuffler or a fixed seed to assert ordering deterministically.
type Shuffler interface {
	// Shuffle applies a uniform random permutation to n elements via swap,
	// with the same contract as rand.Shuffle.
	Shuffle(n int, swap func(i, j int))
}

// RandShuffler is a Shuffler backed by a math/rand source.
type RandShuffler struct {
	rng *rand.Rand
}

// NewRandShuffler creates a Shuffler from the given source seed.
func NewRandShuffler(seed int64) *RandShuffler {
	return &RandShuffler{rng: rand.New(rand.NewSource(seed))}
}

// Shuffle implements the Shuffler interface.
func (s *RandShuffler) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// NoopShuffler leaves the slice order untouched. Used in tests to observe the
// score-descending order the selector produces before randomization.
type NoopShuffler struct{}

// Shuffle implements the Shuffler interface as a no-op.
func (NoopShuffler) Shuffle(n int, swap func(i, j int)) {}
