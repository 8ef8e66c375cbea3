package grid

import (
	"errors"
	"testing"
	"time"
)

func testAxis(t *testing.T) Axis {
	t.Helper()
	r, err := NewTimeRange("08:00", "18:00")
	if err != nil {
		t.Fatalf("NewTimeRange failed: %v", err)
	}
	return NewAxis(r, 96)
}

func TestNewTimeRange(t *testing.T) {
	if _, err := NewTimeRange("18:00", "08:00"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("expected ErrInvalidTimeRange, got %v", err)
	}
	if _, err := NewTimeRange("08:00", "08:00"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("expected ErrInvalidTimeRange for empty range, got %v", err)
	}

	r, err := NewTimeRange("08:00", "18:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Minutes() != 600 {
		t.Errorf("Minutes = %d, want 600", r.Minutes())
	}
}

func TestAxisOffset(t *testing.T) {
	axis := testAxis(t)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		hour   int
		minute int
		want   float64
	}{
		{"range start", 8, 0, 0},
		{"one hour in", 9, 0, 96},
		{"quarter past nine", 9, 15, 120},
		{"before the window maps negative", 7, 0, -96},
		{"after the window maps past the height", 19, 0, 1056},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instant := time.Date(2026, 3, 9, tt.hour, tt.minute, 0, 0, time.Local)
			if got := axis.Offset(instant); got != tt.want {
				t.Errorf("Offset = %v, want %v", got, tt.want)
			}
			// Inverse mapping lands back on the same instant.
			if back := axis.Instant(tt.want, day); !back.Equal(instant) {
				t.Errorf("Instant(%v) = %v, want %v", tt.want, back, instant)
			}
		})
	}
}

func TestAxisHeight(t *testing.T) {
	axis := testAxis(t)
	if got := axis.Height(); got != 960 {
		t.Errorf("Height = %v, want 960 (10 hours at 96/hour)", got)
	}
}

func TestSnappedInstant(t *testing.T) {
	axis := testAxis(t)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		offset float64
		snap   int
		want   string
	}{
		{"exact slot", 96, 15, "09:00"},
		{"rounds down", 100, 15, "09:00"},
		{"rounds up", 115, 15, "09:15"},
		{"half hour snap", 130, 30, "09:30"},
		{"negative offset snaps before window", -10, 15, "07:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := axis.SnappedInstant(tt.offset, day, tt.snap)
			if got.Format("15:04") != tt.want {
				t.Errorf("SnappedInstant(%v) = %s, want %s", tt.offset, got.Format("15:04"), tt.want)
			}
		})
	}
}

func TestNowOffset(t *testing.T) {
	axis := testAxis(t)

	within := time.Date(2026, 3, 9, 12, 0, 0, 0, time.Local)
	offset, visible := axis.NowOffset(within)
	if !visible {
		t.Error("noon should be inside an 08:00-18:00 window")
	}
	if offset != 384 {
		t.Errorf("offset = %v, want 384", offset)
	}

	if _, visible := axis.NowOffset(time.Date(2026, 3, 9, 22, 0, 0, 0, time.Local)); visible {
		t.Error("22:00 should be outside the window")
	}
}
