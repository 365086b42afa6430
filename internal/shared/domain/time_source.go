package domain

import "time"

// TimeSource supplies the current time. Anything that stamps "now" takes one
// instead of reading the system clock directly.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the wall clock.
type SystemTime struct{}

// Now returns the current local time.
func (SystemTime) Now() time.Time { return time.Now() }

// FixedTime always returns the same instant.
type FixedTime time.Time

// Now returns the fixed instant.
func (f FixedTime) Now() time.Time { return time.Time(f) }

// TimeFunc adapts a function to TimeSource.
type TimeFunc func() time.Time

// Now calls f.
func (f TimeFunc) Now() time.Time { return f() }
