package agenda

import (
	"errors"
	"testing"
	"time"
)

// weekdayConfig returns a config with Monday through Friday active.
func weekdayConfig() Config {
	hours := DayHours{Active: true, Start: "08:00", End: "18:00"}
	return Config{
		WorkingHours: map[time.Weekday]DayHours{
			time.Monday:    hours,
			time.Tuesday:   hours,
			time.Wednesday: hours,
			time.Thursday:  hours,
			time.Friday:    hours,
		},
	}
}

func mustResolver(t *testing.T, cfg Config) *Resolver {
	t.Helper()
	r, err := NewResolver(cfg)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIsBlocked_Weekdays(t *testing.T) {
	r := mustResolver(t, weekdayConfig())

	monday := day(2026, 3, 9)
	saturday := day(2026, 3, 14)
	sunday := day(2026, 3, 15)

	if r.IsBlocked(monday) {
		t.Error("active weekday should not be blocked")
	}
	if !r.IsBlocked(saturday) {
		t.Error("saturday has no working hours entry, should be blocked")
	}
	if !r.IsBlocked(sunday) {
		t.Error("sunday has no working hours entry, should be blocked")
	}
}

func TestIsBlocked_InactiveWeekday(t *testing.T) {
	cfg := weekdayConfig()
	cfg.WorkingHours[time.Wednesday] = DayHours{Active: false, Start: "08:00", End: "18:00"}
	r := mustResolver(t, cfg)

	if !r.IsBlocked(day(2026, 3, 11)) {
		t.Error("inactive weekday should be blocked")
	}
}

func TestIsBlocked_Ranges(t *testing.T) {
	cfg := weekdayConfig()
	cfg.BlockedRanges = []BlockedRange{
		{Date: day(2026, 3, 10)},                            // single day
		{Date: day(2026, 3, 23), EndDate: day(2026, 3, 27)}, // vacation week
	}
	r := mustResolver(t, cfg)

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"single blocked day", day(2026, 3, 10), true},
		{"day before single block", day(2026, 3, 9), false},
		{"day after single block", day(2026, 3, 11), false},
		{"range start inclusive", day(2026, 3, 23), true},
		{"range middle", day(2026, 3, 25), true},
		{"range end inclusive", day(2026, 3, 27), true},
		{"day after range", day(2026, 3, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsBlocked(tt.d); got != tt.want {
				t.Errorf("IsBlocked(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestSurgeryDayOverridesEverything(t *testing.T) {
	cfg := weekdayConfig()
	// A surgery day on a Sunday that is also inside a blocked range.
	cfg.BlockedRanges = []BlockedRange{{Date: day(2026, 3, 9), EndDate: day(2026, 3, 22)}}
	cfg.SurgeryDays = []time.Time{day(2026, 3, 15)} // Sunday

	r := mustResolver(t, cfg)

	if !r.IsSurgeryDay(day(2026, 3, 15)) {
		t.Fatal("expected surgery day")
	}
	if r.IsBlocked(day(2026, 3, 15)) {
		t.Error("surgery day must never be blocked")
	}
	// Neighboring days stay blocked by the range.
	if !r.IsBlocked(day(2026, 3, 16)) {
		t.Error("non-surgery day inside range should stay blocked")
	}
}

func TestResolverInvariant_SurgeryImpliesNotBlocked(t *testing.T) {
	// Sweep a month of days against a config that blocks aggressively;
	// any surgery day must report unblocked.
	cfg := Config{
		WorkingHours:    map[time.Weekday]DayHours{}, // everything inactive
		BlockedRanges:   []BlockedRange{{Date: day(2026, 3, 1), EndDate: day(2026, 3, 31)}},
		RecurringBlocks: []string{"FREQ=DAILY"},
		SurgeryDays:     []time.Time{day(2026, 3, 5), day(2026, 3, 18)},
	}
	r := mustResolver(t, cfg)

	for d := day(2026, 3, 1); d.Month() == time.March; d = d.AddDate(0, 0, 1) {
		if r.IsSurgeryDay(d) && r.IsBlocked(d) {
			t.Errorf("invariant violated on %v: surgery day reported blocked", d)
		}
		if !r.IsSurgeryDay(d) && !r.IsBlocked(d) {
			t.Errorf("%v should be blocked by config", d)
		}
	}
}

func TestRecurringBlocks(t *testing.T) {
	cfg := weekdayConfig()
	// Block every Friday recurringly.
	cfg.RecurringBlocks = []string{"FREQ=WEEKLY;BYDAY=FR"}
	r := mustResolver(t, cfg)

	if !r.IsBlocked(day(2026, 3, 13)) {
		t.Error("recurring friday block should apply")
	}
	if r.IsBlocked(day(2026, 3, 12)) {
		t.Error("thursday should stay open")
	}
}

func TestNewResolver_Validation(t *testing.T) {
	cfg := weekdayConfig()
	cfg.BlockedRanges = []BlockedRange{{Date: day(2026, 3, 20), EndDate: day(2026, 3, 10)}}
	if _, err := NewResolver(cfg); !errors.Is(err, ErrInvalidBlockedRange) {
		t.Errorf("expected ErrInvalidBlockedRange, got %v", err)
	}

	cfg = weekdayConfig()
	cfg.RecurringBlocks = []string{"FREQ=SOMETIMES"}
	if _, err := NewResolver(cfg); !errors.Is(err, ErrInvalidRecurrence) {
		t.Errorf("expected ErrInvalidRecurrence, got %v", err)
	}
}

func TestHoursFor(t *testing.T) {
	r := mustResolver(t, weekdayConfig())

	hours, ok := r.HoursFor(day(2026, 3, 9))
	if !ok {
		t.Fatal("expected working hours on monday")
	}
	if hours.Start != "08:00" || hours.End != "18:00" {
		t.Errorf("unexpected hours %+v", hours)
	}

	if _, ok := r.HoursFor(day(2026, 3, 14)); ok {
		t.Error("saturday should report no working hours")
	}
}
