// Package timeutil provides a testable abstraction over time operations.
package timeutil

import "time"

// Clock provides the current time. The export filename embeds a timestamp,
// so production code takes a Clock instead of calling time.Now directly.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock is a Clock pinned to a single instant, for tests.
type FixedClock struct {
	Time time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time { return c.Time }
