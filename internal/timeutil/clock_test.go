package timeutil

import (
	"testing"
	"time"
)

func TestRealClockNow(t *testing.T) {
	before := time.Now()
	got := RealClock{}.Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("RealClock.Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestFixedClockNow(t *testing.T) {
	instant := time.Date(2022, 10, 1, 12, 34, 0, 0, time.UTC)
	c := FixedClock{Time: instant}
	if got := c.Now(); !got.Equal(instant) {
		t.Errorf("FixedClock.Now() = %v, want %v", got, instant)
	}
	if got := c.Now(); !got.Equal(instant) {
		t.Errorf("FixedClock.Now() moved to %v", got)
	}
}
