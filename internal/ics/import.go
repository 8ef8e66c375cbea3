// Package ics imports appointments from iCalendar files.
//
// VEVENTs become appointments; RRULE-based recurrences are expanded into
// concrete occurrences within a caller-supplied window.
package ics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
)

// Import errors.
var (
	ErrEmptyCalendar = errors.New("calendar contains no events")
	ErrInvalidWindow = errors.New("import window end is before its start")
)

// maxOccurrencesPerEvent caps recurrence expansion for pathological rules.
const maxOccurrencesPerEvent = 1000

// Options controls how VEVENTs are turned into appointments.
type Options struct {
	// From / To bound recurrence expansion (inclusive start, exclusive end).
	// Both zero means a year either side of today.
	From time.Time
	To   time.Time

	// DefaultType is used when an event carries no recognizable CATEGORIES
	// value. Zero value falls back to the generic type.
	DefaultType appointment.Type
}

// ImportFile reads and converts an .ics file.
func ImportFile(path string, opts Options) ([]*appointment.Appointment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening calendar: %w", err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse converts an iCalendar stream into appointments. Events that cannot
// be converted (missing times, inverted intervals) are skipped rather than
// failing the whole import.
func Parse(r io.Reader, opts Options) ([]*appointment.Appointment, error) {
	if opts.From.IsZero() && opts.To.IsZero() {
		// Default window: a year either side of today.
		now := time.Now()
		opts.From = now.AddDate(-1, 0, 0)
		opts.To = now.AddDate(1, 0, 0)
	}
	if opts.To.Before(opts.From) {
		return nil, ErrInvalidWindow
	}
	if opts.DefaultType == "" {
		opts.DefaultType = appointment.TypeOther
	}

	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := cal.Events()
	if len(events) == 0 {
		return nil, ErrEmptyCalendar
	}

	var result []*appointment.Appointment
	for _, ve := range events {
		appts, err := convertEvent(ve, opts)
		if err != nil {
			// Skip the malformed event, keep converting the rest.
			continue
		}
		result = append(result, appts...)
	}
	return result, nil
}

// convertEvent expands one VEVENT into zero or more appointments.
func convertEvent(ve *ical.VEvent, opts Options) ([]*appointment.Appointment, error) {
	start, err := ve.GetStartAt()
	if err != nil {
		return nil, fmt.Errorf("event start: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return nil, fmt.Errorf("event end: %w", err)
	}
	if !end.After(start) {
		return nil, appointment.ErrEndBeforeStart
	}
	duration := end.Sub(start)

	patient := propValue(ve, ical.ComponentPropertySummary)
	if patient == "" {
		patient = "Imported appointment"
	}

	typ := opts.DefaultType
	if cat := propValue(ve, ical.ComponentPropertyCategories); cat != "" {
		if parsed, err := appointment.ParseType(strings.ToLower(cat)); err == nil {
			typ = parsed
		}
	}
	status := parseStatus(propValue(ve, ical.ComponentPropertyStatus))

	starts, err := occurrences(ve, start, opts)
	if err != nil {
		return nil, err
	}

	appts := make([]*appointment.Appointment, 0, len(starts))
	for _, s := range starts {
		a, err := appointment.New(patient, typ, s, s.Add(duration))
		if err != nil {
			continue
		}
		a.Status = status
		a.Notes = propValue(ve, ical.ComponentPropertyDescription)
		if uid := propValue(ve, ical.ComponentPropertyUniqueId); uid != "" {
			// Derive stable IDs so re-imports reference the same visits.
			a.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(uid+s.Format(time.RFC3339))).String()
		}
		appts = append(appts, a)
	}
	return appts, nil
}

// occurrences returns the start instants of a VEVENT within the window:
// the single DTSTART for plain events, or the expanded RRULE occurrences.
func occurrences(ve *ical.VEvent, start time.Time, opts Options) ([]time.Time, error) {
	raw := propValue(ve, ical.ComponentPropertyRrule)
	if raw == "" {
		if start.Before(opts.From) || !start.Before(opts.To) {
			return nil, nil
		}
		return []time.Time{start}, nil
	}

	rule, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE %q: %w", raw, err)
	}
	rule.DTStart(start)

	all := rule.Between(opts.From, opts.To, true)
	if len(all) > maxOccurrencesPerEvent {
		all = all[:maxOccurrencesPerEvent]
	}
	return all, nil
}

func propValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	p := ve.GetProperty(name)
	if p == nil {
		return ""
	}
	return p.Value
}

// parseStatus maps iCalendar STATUS values onto appointment statuses.
func parseStatus(s string) appointment.Status {
	switch strings.ToUpper(s) {
	case "CONFIRMED":
		return appointment.StatusConfirmed
	case "CANCELLED":
		return appointment.StatusCancelled
	default:
		return appointment.StatusPending
	}
}
