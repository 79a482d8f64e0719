package clock

import (
	"testing"
	"time"
)

func TestRealClockSuccess(t *testing.T) {
	c := &RealClock{}
	now := c.Now()
	if time.Since(now) < 0 {
		t.Fatalf("expected now to be <= current time")
	}

	if now.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", now.Location())
	}
}

func TestManualClockSuccess(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	if got := c.Now(); !got.Equal(start) {
		t.Fatalf("expected start time %v, got %v", start, got)
	}

	c.Advance(90 * time.Second)

	if got, want := c.Now(), start.Add(90*time.Second); !got.Equal(want) {
		t.Fatalf("expected advanced time %v, got %v", want, got)
	}

	later := start.Add(time.Hour)
	c.Set(later)

	if got := c.Now(); !got.Equal(later) {
		t.Fatalf("expected set time %v, got %v", later, got)
	}
}
