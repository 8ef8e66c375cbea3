package grid

import (
	"errors"
	"math"
	"time"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
)

// Drag errors.
var (
	ErrDragActive   = errors.New("a drag session is already active")
	ErrNotDraggable = errors.New("appointment cannot be rescheduled")
)

// Mode selects what a drag session changes.
type Mode int

const (
	// ModeMove drags the whole appointment, preserving its duration.
	ModeMove Mode = iota
	// ModeResize drags only the end edge; the day column never changes.
	ModeResize
)

// Pointer is a pointer position in axis units, X relative to the left edge of
// the day area, Y relative to the top of the visible window.
type Pointer struct {
	X float64
	Y float64
}

// MoveCommand reschedules an appointment to a new interval of equal duration.
type MoveCommand struct {
	EventID  string
	NewStart time.Time
	NewEnd   time.Time
}

// ResizeCommand changes an appointment's end, keeping its start.
type ResizeCommand struct {
	EventID  string
	NewStart time.Time
	NewEnd   time.Time
}

// Result is the outcome of releasing a drag session. At most one field is
// set: Clicked when the pointer never travelled past the threshold, or one
// command when a real drag changed the interval. All fields zero means the
// drag ended where it began.
type Result struct {
	Clicked bool
	Move    *MoveCommand
	Resize  *ResizeCommand
}

// Session is the ephemeral state of one pointer capture. It is created on
// pointer-down over a draggable appointment, updated on every pointer-move,
// and consumed exactly once on release. It is never persisted.
type Session struct {
	EventID     string
	Mode        Mode
	OriginStart time.Time
	OriginEnd   time.Time
	OriginDay   int

	start   Pointer
	deltaY  float64 // snapped vertical delta, valid once crossed
	day     int     // current target day column
	crossed bool    // irreversible once the threshold is exceeded
}

// Dragging returns true once the pointer has crossed the drag threshold.
func (s *Session) Dragging() bool {
	return s.crossed
}

// DeltaY returns the current snapped vertical delta in axis units.
func (s *Session) DeltaY() float64 {
	return s.deltaY
}

// TargetDay returns the day column currently under the pointer.
func (s *Session) TargetDay() int {
	return s.day
}

// Metrics fixes the geometry a Dragger interprets pointer movement against.
type Metrics struct {
	Axis        Axis
	SnapMinutes int     // snap granularity, minutes
	Threshold   float64 // click-vs-drag travel, axis units
	DayWidth    float64 // total width of the day area, axis units
	NumDays     int     // visible day columns
}

// snapUnits returns the vertical size of one snap step.
func (m Metrics) snapUnits() float64 {
	snap := m.SnapMinutes
	if snap <= 0 {
		snap = DefaultSnapMinutes
	}
	return m.Axis.SnapUnits(snap)
}

// Dragger owns the single optional drag session. Only one pointer can be
// captured at a time, so starting a second session while one is active is
// refused rather than queued.
type Dragger struct {
	metrics Metrics
	session *Session
}

// NewDragger creates a Dragger with the given geometry.
func NewDragger(m Metrics) *Dragger {
	if m.Threshold <= 0 {
		m.Threshold = DefaultDragThreshold
	}
	if m.SnapMinutes <= 0 {
		m.SnapMinutes = DefaultSnapMinutes
	}
	return &Dragger{metrics: m}
}

// SetMetrics updates the geometry, e.g. after a window resize. An in-flight
// session keeps the geometry it started with.
func (d *Dragger) SetMetrics(m Metrics) {
	if d.session != nil {
		return
	}
	if m.Threshold <= 0 {
		m.Threshold = DefaultDragThreshold
	}
	if m.SnapMinutes <= 0 {
		m.SnapMinutes = DefaultSnapMinutes
	}
	d.metrics = m
}

// Active returns true while a session exists.
func (d *Dragger) Active() bool {
	return d.session != nil
}

// Session returns the in-flight session for rendering, or nil.
func (d *Dragger) Session() *Session {
	return d.session
}

// Begin starts a session on pointer-down over an appointment's handle.
// It fails when a session is already active or the appointment is frozen.
// Beginning a session has no visible effect until the threshold is crossed.
func (d *Dragger) Begin(a *appointment.Appointment, mode Mode, p Pointer, dayIndex int) error {
	if d.session != nil {
		return ErrDragActive
	}
	if !a.Draggable() {
		return ErrNotDraggable
	}

	d.session = &Session{
		EventID:     a.ID,
		Mode:        mode,
		OriginStart: a.Start,
		OriginEnd:   a.End,
		OriginDay:   dayIndex,
		start:       p,
		day:         dayIndex,
	}
	return nil
}

// Move feeds a pointer position into the session. Below the threshold the
// session stays armed and reports no deltas; past it, the vertical delta is
// snapped to whole snap steps and, in move mode, the day column under the
// pointer is recomputed. Calling Move with no session is a no-op.
func (d *Dragger) Move(p Pointer) {
	s := d.session
	if s == nil {
		return
	}

	rawX := p.X - s.start.X
	rawY := p.Y - s.start.Y

	if !s.crossed {
		if math.Abs(rawX) <= d.metrics.Threshold && math.Abs(rawY) <= d.metrics.Threshold {
			return
		}
		s.crossed = true
	}

	// Truncate toward zero: a partial snap step of travel keeps the
	// appointment where it is instead of jumping early.
	snap := d.metrics.snapUnits()
	s.deltaY = math.Trunc(rawY/snap) * snap

	if s.Mode == ModeMove && d.metrics.NumDays > 0 && d.metrics.DayWidth > 0 {
		colWidth := d.metrics.DayWidth / float64(d.metrics.NumDays)
		day := int(p.X / colWidth)
		if day < 0 {
			day = 0
		}
		if day >= d.metrics.NumDays {
			day = d.metrics.NumDays - 1
		}
		s.day = day
	}
}

// Release consumes the session and converts it into at most one command.
// A session that never crossed the threshold is a plain click. A crossed
// session with zero net time and day change produces nothing. Resizes are
// clamped so the new end stays at least one snap step after the original
// start.
func (d *Dragger) Release() Result {
	s := d.session
	d.session = nil
	if s == nil {
		return Result{}
	}
	if !s.crossed {
		return Result{Clicked: true}
	}

	minuteDelta := int(math.Round(s.deltaY / d.metrics.Axis.UnitsPerMinute()))

	switch s.Mode {
	case ModeResize:
		newEnd := s.OriginEnd.Add(time.Duration(minuteDelta) * time.Minute)
		minEnd := s.OriginStart.Add(time.Duration(d.metrics.SnapMinutes) * time.Minute)
		if newEnd.Before(minEnd) {
			newEnd = minEnd
		}
		if newEnd.Equal(s.OriginEnd) {
			return Result{}
		}
		return Result{Resize: &ResizeCommand{
			EventID:  s.EventID,
			NewStart: s.OriginStart,
			NewEnd:   newEnd,
		}}

	default: // ModeMove
		dayDelta := s.day - s.OriginDay
		if minuteDelta == 0 && dayDelta == 0 {
			return Result{}
		}
		newStart := s.OriginStart.AddDate(0, 0, dayDelta).Add(time.Duration(minuteDelta) * time.Minute)
		newEnd := newStart.Add(s.OriginEnd.Sub(s.OriginStart))
		return Result{Move: &MoveCommand{
			EventID:  s.EventID,
			NewStart: newStart,
			NewEnd:   newEnd,
		}}
	}
}

// Cancel discards the session without emitting a command, e.g. when pointer
// capture is lost.
func (d *Dragger) Cancel() {
	d.session = nil
}
