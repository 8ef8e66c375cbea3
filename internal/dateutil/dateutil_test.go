package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"midnight", time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local), "2026-03-09"},
		{"late evening same day", time.Date(2026, 3, 9, 23, 59, 0, 0, time.Local), "2026-03-09"},
		{"single digit month and day", time.Date(2026, 1, 2, 12, 0, 0, 0, time.Local), "2026-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.in); got != tt.want {
				t.Errorf("DayKey(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDayKey(t *testing.T) {
	got, err := ParseDayKey("2026-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DayKey(got) != "2026-03-09" {
		t.Errorf("round trip failed: got %q", DayKey(got))
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("expected midnight, got %v", got)
	}

	if _, err := ParseDayKey("09/03/2026"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday maps to itself", time.Date(2026, 3, 9, 15, 30, 0, 0, time.Local), "2026-03-09"},
		{"wednesday maps back to monday", time.Date(2026, 3, 11, 9, 0, 0, 0, time.Local), "2026-03-09"},
		{"sunday belongs to previous monday", time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local), "2026-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(WeekStart(tt.in)); got != tt.want {
				t.Errorf("WeekStart(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("Wednesday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != time.Wednesday {
		t.Errorf("got %v, want Wednesday", d)
	}

	if _, err := ParseWeekday("someday"); !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("expected ErrInvalidWeekday, got %v", err)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 12, 1, 0, 0, 0, time.Local)

	if got := DaysBetween(a, b); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(b, a); got != -3 {
		t.Errorf("DaysBetween reversed = %d, want -3", got)
	}
}
