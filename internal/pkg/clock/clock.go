// Package clock provides the time source used by the application.
// An interface instead of time.Now keeps registration dates deterministic
// in tests.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the current wall-clock time in UTC.
type SystemClock struct{}

// NewSystemClock creates a SystemClock.
func NewSystemClock() SystemClock { return SystemClock{} }

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Instant time.Time
}

// Now implements Clock.
func (f Fixed) Now() time.Time { return f.Instant }

// DateInt encodes t's UTC calendar date as year*10000 + month*100 + day,
// the integer form stored on registrations.
func DateInt(t time.Time) int {
	t = t.UTC()
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}
