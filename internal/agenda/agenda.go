// Package agenda decides which calendar days can take appointments.
//
// A day is blocked when it falls inside a blocked range, matches a recurring
// block rule, or its weekday has no active working hours. Surgery days
// override every other rule and are always selectable.
package agenda

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
)

// Validation errors.
var (
	ErrInvalidBlockedRange = errors.New("blocked range end is before its start")
	ErrInvalidRecurrence   = errors.New("invalid recurring block rule")
)

// DayHours describes the working window for one weekday.
type DayHours struct {
	Active bool
	Start  string // "HH:MM"
	End    string // "HH:MM"
}

// BlockedRange is an inclusive range of blocked calendar days.
// A zero EndDate means the range covers only Date.
type BlockedRange struct {
	Date    time.Time
	EndDate time.Time
}

// Config is the agenda configuration supplied per rendering session.
// It is read-only once handed to a Resolver.
type Config struct {
	// WorkingHours maps each weekday to its working window. A missing entry
	// means the weekday takes no appointments.
	WorkingHours map[time.Weekday]DayHours

	// BlockedRanges lists one-off blocked day ranges (vacations, closures).
	BlockedRanges []BlockedRange

	// SurgeryDays are always selectable, overriding every blocking rule.
	SurgeryDays []time.Time

	// RecurringBlocks holds RRULE strings (e.g. "FREQ=WEEKLY;BYDAY=SA")
	// whose occurrences are treated as blocked days.
	RecurringBlocks []string
}

// Resolver answers availability questions for calendar days.
// It is pure: the same date always yields the same answer for a given config.
type Resolver struct {
	workingHours map[time.Weekday]DayHours
	blocked      []blockedKeys
	surgery      map[string]struct{}
	rules        []*rrule.RRule
}

// blockedKeys is a BlockedRange pre-converted to day keys. Day keys compare
// lexicographically in date order, so range membership is a string comparison.
type blockedKeys struct {
	start string
	end   string
}

// NewResolver validates the config and builds a Resolver.
func NewResolver(cfg Config) (*Resolver, error) {
	r := &Resolver{
		workingHours: cfg.WorkingHours,
		surgery:      make(map[string]struct{}, len(cfg.SurgeryDays)),
	}

	for _, br := range cfg.BlockedRanges {
		end := br.EndDate
		if end.IsZero() {
			end = br.Date
		}
		startKey := dateutil.DayKey(br.Date)
		endKey := dateutil.DayKey(end)
		if endKey < startKey {
			return nil, fmt.Errorf("%w: %s..%s", ErrInvalidBlockedRange, startKey, endKey)
		}
		r.blocked = append(r.blocked, blockedKeys{start: startKey, end: endKey})
	}

	for _, d := range cfg.SurgeryDays {
		r.surgery[dateutil.DayKey(d)] = struct{}{}
	}

	for _, s := range cfg.RecurringBlocks {
		rule, err := rrule.StrToRRule(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRecurrence, s, err)
		}
		// Anchor at a fixed local midnight so occurrences land inside the
		// calendar day they name, independent of parse time.
		rule.DTStart(time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local))
		r.rules = append(r.rules, rule)
	}

	return r, nil
}

// IsSurgeryDay returns true if date's calendar day is marked as a surgery day.
func (r *Resolver) IsSurgeryDay(date time.Time) bool {
	_, ok := r.surgery[dateutil.DayKey(date)]
	return ok
}

// IsBlocked returns true if no appointment may be selected on date.
// Surgery days are never blocked. Otherwise a day is blocked when it matches
// a blocked range, a recurring block rule, or an inactive/missing weekday.
func (r *Resolver) IsBlocked(date time.Time) bool {
	if r.IsSurgeryDay(date) {
		return false
	}

	key := dateutil.DayKey(date)
	for _, b := range r.blocked {
		if key >= b.start && key <= b.end {
			return true
		}
	}

	if r.matchesRecurringBlock(date) {
		return true
	}

	hours, ok := r.workingHours[date.Weekday()]
	if !ok || !hours.Active {
		// Missing weekday entry defaults to blocked.
		return true
	}
	return false
}

// HoursFor returns the working window for date's weekday. The second return
// is false when the weekday is inactive or missing. Surgery days without an
// active weekday entry report no window but remain selectable.
func (r *Resolver) HoursFor(date time.Time) (DayHours, bool) {
	hours, ok := r.workingHours[date.Weekday()]
	if !ok || !hours.Active {
		return DayHours{}, false
	}
	return hours, true
}

// matchesRecurringBlock returns true if any recurring rule has an occurrence
// on date's calendar day.
func (r *Resolver) matchesRecurringBlock(date time.Time) bool {
	if len(r.rules) == 0 {
		return false
	}

	dayStart := dateutil.TruncateToDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)
	for _, rule := range r.rules {
		if len(rule.Between(dayStart, dayEnd, true)) > 0 {
			return true
		}
	}
	return false
}
