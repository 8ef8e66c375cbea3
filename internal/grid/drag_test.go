package grid

import (
	"errors"
	"testing"
	"time"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
)

// dragMetrics mirrors the default web grid: 08:00-18:00, 96 units per hour,
// 15-minute snap (24 units), 7 day columns of 100 units each.
func dragMetrics(t *testing.T) Metrics {
	t.Helper()
	return Metrics{
		Axis:        testAxis(t),
		SnapMinutes: 15,
		Threshold:   4,
		DayWidth:    700,
		NumDays:     7,
	}
}

func dragAppointment(t *testing.T, start, end string) *appointment.Appointment {
	t.Helper()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.Local)
	a, err := appointment.New("Ana Suarez", appointment.TypeConsultation,
		appointment.AtMinute(day, appointment.TimeToMinutes(start)),
		appointment.AtMinute(day, appointment.TimeToMinutes(end)))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestBegin_Exclusivity(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeMove, Pointer{X: 10, Y: 100}, 0); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if !d.Active() {
		t.Fatal("expected active session")
	}
	if err := d.Begin(a, ModeMove, Pointer{X: 10, Y: 100}, 0); !errors.Is(err, ErrDragActive) {
		t.Errorf("second Begin: expected ErrDragActive, got %v", err)
	}
}

func TestBegin_RejectsFrozenAppointments(t *testing.T) {
	d := NewDragger(dragMetrics(t))

	for _, status := range []appointment.Status{appointment.StatusCancelled, appointment.StatusDone} {
		a := dragAppointment(t, "09:00", "09:30")
		a.Status = status
		if err := d.Begin(a, ModeMove, Pointer{}, 0); !errors.Is(err, ErrNotDraggable) {
			t.Errorf("status %q: expected ErrNotDraggable, got %v", status, err)
		}
		if d.Active() {
			t.Errorf("status %q: no session should exist", status)
		}
	}
}

func TestRelease_BelowThresholdIsClick(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeMove, Pointer{X: 10, Y: 100}, 0); err != nil {
		t.Fatal(err)
	}
	// Wiggle strictly below the threshold in both axes.
	d.Move(Pointer{X: 12, Y: 103})
	d.Move(Pointer{X: 9, Y: 98})

	res := d.Release()
	if !res.Clicked {
		t.Error("sub-threshold release should be a click")
	}
	if res.Move != nil || res.Resize != nil {
		t.Error("click must not emit a command")
	}
	if d.Active() {
		t.Error("session must be consumed on release")
	}
}

func TestRelease_MoveSnapsAndPreservesDuration(t *testing.T) {
	// 09:00-09:30 appointment, raw delta-y of 40 units truncates to one
	// snap step (24 units = 15 minutes): committed move is 09:15-09:45.
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeMove, Pointer{X: 10, Y: 100}, 0); err != nil {
		t.Fatal(err)
	}
	d.Move(Pointer{X: 10, Y: 140})

	res := d.Release()
	if res.Move == nil {
		t.Fatal("expected a move command")
	}
	if got := res.Move.NewStart.Format("15:04"); got != "09:15" {
		t.Errorf("NewStart = %s, want 09:15", got)
	}
	if got := res.Move.NewEnd.Format("15:04"); got != "09:45" {
		t.Errorf("NewEnd = %s, want 09:45", got)
	}
	if res.Move.NewEnd.Sub(res.Move.NewStart) != a.Duration() {
		t.Error("move must preserve duration")
	}
}

func TestRelease_MoveAcrossDays(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	// Start in day column 0, drag the pointer into day column 2 with no
	// vertical travel worth a snap step.
	if err := d.Begin(a, ModeMove, Pointer{X: 50, Y: 100}, 0); err != nil {
		t.Fatal(err)
	}
	d.Move(Pointer{X: 250, Y: 105})

	res := d.Release()
	if res.Move == nil {
		t.Fatal("expected a move command")
	}
	wantStart := a.Start.AddDate(0, 0, 2)
	if !res.Move.NewStart.Equal(wantStart) {
		t.Errorf("NewStart = %v, want %v", res.Move.NewStart, wantStart)
	}
	if res.Move.NewEnd.Sub(res.Move.NewStart) != a.Duration() {
		t.Error("cross-day move must preserve duration")
	}
}

func TestRelease_ResizeNeverChangesDay(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeResize, Pointer{X: 50, Y: 148}, 0); err != nil {
		t.Fatal(err)
	}
	// Horizontal travel into another day column plus one snap step down.
	d.Move(Pointer{X: 450, Y: 172})

	res := d.Release()
	if res.Resize == nil {
		t.Fatal("expected a resize command")
	}
	if got := res.Resize.NewEnd.Format("15:04"); got != "09:45" {
		t.Errorf("NewEnd = %s, want 09:45", got)
	}
	// Start and day are untouched by a resize.
	if !res.Resize.NewStart.Equal(a.Start) {
		t.Errorf("NewStart = %v, want origin start", res.Resize.NewStart)
	}
}

func TestRelease_ResizeClampsAboveStart(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeResize, Pointer{X: 50, Y: 148}, 0); err != nil {
		t.Fatal(err)
	}
	// Drag far upward: raw result would invert the interval.
	d.Move(Pointer{X: 50, Y: -400})

	res := d.Release()
	if res.Resize == nil {
		t.Fatal("expected a resize command")
	}
	if !res.Resize.NewEnd.After(res.Resize.NewStart) {
		t.Fatal("resize inverted the interval")
	}
	// Clamped to exactly one snap step after the original start.
	if got := res.Resize.NewEnd.Format("15:04"); got != "09:15" {
		t.Errorf("NewEnd = %s, want 09:15", got)
	}
}

func TestRelease_NoNetChangeEmitsNothing(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeMove, Pointer{X: 50, Y: 100}, 0); err != nil {
		t.Fatal(err)
	}
	// Cross the threshold, then come back to rest inside the origin slot
	// and column.
	d.Move(Pointer{X: 50, Y: 160})
	d.Move(Pointer{X: 52, Y: 110})

	res := d.Release()
	if res.Clicked || res.Move != nil || res.Resize != nil {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestCancel_EmitsNothing(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeMove, Pointer{X: 50, Y: 100}, 0); err != nil {
		t.Fatal(err)
	}
	d.Move(Pointer{X: 50, Y: 300})
	d.Cancel()

	if d.Active() {
		t.Error("cancel must discard the session")
	}
	// A release after cancellation finds no session and emits nothing.
	res := d.Release()
	if res.Clicked || res.Move != nil || res.Resize != nil {
		t.Errorf("expected empty result after cancel, got %+v", res)
	}
}

func TestThresholdCrossingIsIrreversible(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeMove, Pointer{X: 50, Y: 100}, 0); err != nil {
		t.Fatal(err)
	}
	d.Move(Pointer{X: 50, Y: 200}) // well past the threshold
	d.Move(Pointer{X: 50, Y: 101}) // returns next to the origin

	if s := d.Session(); s == nil || !s.Dragging() {
		t.Error("session must stay in dragging state once crossed")
	}
	res := d.Release()
	if res.Clicked {
		t.Error("a crossed session can never end as a click")
	}
}

func TestDayColumnClamping(t *testing.T) {
	d := NewDragger(dragMetrics(t))
	a := dragAppointment(t, "09:00", "09:30")

	if err := d.Begin(a, ModeMove, Pointer{X: 50, Y: 100}, 0); err != nil {
		t.Fatal(err)
	}
	// Pointer leaves the day area to the right; target clamps to the last
	// visible column.
	d.Move(Pointer{X: 5000, Y: 100})

	if got := d.Session().TargetDay(); got != 6 {
		t.Errorf("TargetDay = %d, want 6", got)
	}

	d.Move(Pointer{X: -300, Y: 100})
	if got := d.Session().TargetDay(); got != 0 {
		t.Errorf("TargetDay after left exit = %d, want 0", got)
	}
}
