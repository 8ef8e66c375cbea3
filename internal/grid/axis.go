// Package grid implements the appointment calendar's layout engine: the
// time-axis mapping between instants and visual offsets, the column packing
// of overlapping intervals, and the drag/resize interaction session.
//
// Everything in this package is rendering-agnostic. Offsets are abstract
// units; the TUI maps them to terminal rows and a web front end would map
// them to pixels.
package grid

import (
	"errors"
	"math"
	"time"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
)

// Geometry defaults.
const (
	// DefaultSnapMinutes is the time granularity drags snap to.
	DefaultSnapMinutes = 15
	// DefaultHourHeight is the visual height of one hour in axis units.
	DefaultHourHeight = 96.0
	// DefaultDragThreshold is the pointer travel (units, either axis) that
	// distinguishes a drag from a click.
	DefaultDragThreshold = 4.0
)

// ErrInvalidTimeRange reports a visible window whose end is not after its start.
var ErrInvalidTimeRange = errors.New("time range max must be after min")

// TimeRange bounds the visible grid as minutes-of-day, applied to every
// rendered day. Events outside the range still map through the same linear
// axis and simply land off-grid.
type TimeRange struct {
	MinMinutes int
	MaxMinutes int
}

// NewTimeRange builds a TimeRange from "HH:MM" bounds.
func NewTimeRange(minTime, maxTime string) (TimeRange, error) {
	r := TimeRange{
		MinMinutes: appointment.TimeToMinutes(minTime),
		MaxMinutes: appointment.TimeToMinutes(maxTime),
	}
	if r.MaxMinutes <= r.MinMinutes {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return r, nil
}

// Minutes returns the visible window length in minutes.
func (r TimeRange) Minutes() int {
	return r.MaxMinutes - r.MinMinutes
}

// Axis is the linear mapping between wall-clock time and visual offsets.
// The zero offset sits at Range.MinMinutes on every rendered day.
type Axis struct {
	Range        TimeRange
	UnitsPerHour float64
}

// NewAxis builds an Axis. A non-positive unitsPerHour falls back to the
// default scale.
func NewAxis(r TimeRange, unitsPerHour float64) Axis {
	if unitsPerHour <= 0 {
		unitsPerHour = DefaultHourHeight
	}
	return Axis{Range: r, UnitsPerHour: unitsPerHour}
}

// UnitsPerMinute returns the vertical scale per minute.
func (a Axis) UnitsPerMinute() float64 {
	return a.UnitsPerHour / 60
}

// SnapUnits returns the height of one snap step in axis units.
func (a Axis) SnapUnits(snapMinutes int) float64 {
	return float64(snapMinutes) * a.UnitsPerMinute()
}

// Height returns the total height of the visible window.
func (a Axis) Height() float64 {
	return float64(a.Range.Minutes()) * a.UnitsPerMinute()
}

// Offset maps an instant to its vertical offset. The mapping is total:
// instants before the window yield negative offsets, instants after it yield
// offsets past Height().
func (a Axis) Offset(t time.Time) float64 {
	return a.OffsetMinutes(appointment.MinuteOfDay(t))
}

// OffsetMinutes maps a minute-of-day to its vertical offset.
func (a Axis) OffsetMinutes(m int) float64 {
	return float64(m-a.Range.MinMinutes) * a.UnitsPerMinute()
}

// Instant is the inverse mapping: it places offset on the given calendar day.
// No snapping is applied; use SnappedInstant for slot-aligned results.
func (a Axis) Instant(offset float64, day time.Time) time.Time {
	minutes := float64(a.Range.MinMinutes) + offset/a.UnitsPerMinute()
	return appointment.AtMinute(day, int(math.Round(minutes)))
}

// SnappedInstant maps offset to an instant on day, rounded to the nearest
// multiple of snapMinutes. A non-positive snap falls back to the default.
func (a Axis) SnappedInstant(offset float64, day time.Time, snapMinutes int) time.Time {
	if snapMinutes <= 0 {
		snapMinutes = DefaultSnapMinutes
	}
	minutes := float64(a.Range.MinMinutes) + offset/a.UnitsPerMinute()
	snapped := int(math.Round(minutes/float64(snapMinutes))) * snapMinutes
	return appointment.AtMinute(day, snapped)
}

// NowOffset returns the offset of the current-time indicator and whether it
// falls inside the visible window.
func (a Axis) NowOffset(now time.Time) (float64, bool) {
	m := appointment.MinuteOfDay(now)
	return a.OffsetMinutes(m), m >= a.Range.MinMinutes && m < a.Range.MaxMinutes
}
