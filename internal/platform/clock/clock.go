// Package clock abstracts the wall clock so timestamp-producing code can be
// tested against a fixed "now".
package clock

import "time"

// Clock supplies the current instant. Production code uses System; tests use
// Fixed to pin "today" and assert exact schedule and streak values.
type Clock interface {
	Now() time.Time
}

// System is a Clock reading the real wall clock in UTC.
type System struct{}

// Now implements the Clock interface.
func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock frozen at a single instant.
type Fixed struct {
	Instant time.Time
}

// NewFixed creates a Clock frozen at t.
func NewFixed(t time.Time) Fixed {
	return Fixed{Instant: t.UTC()}
}

// Now implements the Clock interface.
func (f Fixed) Now() time.Time {
	return f.Instant
}
