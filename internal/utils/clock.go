package utils

import "time"

// Clock abstracts wall-clock reads so request validation can be tested
// against a fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
