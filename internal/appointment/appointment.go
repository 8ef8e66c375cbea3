// Package appointment defines the core domain types for clinical-agenda.
package appointment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrEmptyPatient   = errors.New("patient name cannot be empty")
	ErrInvalidType    = errors.New("unknown appointment type")
	ErrInvalidStatus  = errors.New("unknown appointment status")
	ErrEndBeforeStart = errors.New("end time must be after start time")
)

// Domain errors.
var (
	ErrNotFound = errors.New("appointment not found")
	ErrOverlap  = errors.New("appointment overlaps with an existing one")
)

// Status represents the state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
	StatusDone      Status = "done"
)

// Valid returns true if the status is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusNoShow, StatusDone:
		return true
	default:
		return false
	}
}

// Type categorizes an appointment. It only affects labeling and coloring,
// never scheduling decisions.
type Type string

const (
	TypeConsultation Type = "consultation"
	TypeFollowUp     Type = "follow_up"
	TypeSurgery      Type = "surgery"
	TypeStudy        Type = "study"
	TypeOther        Type = "other"
)

// TypeInfo holds display attributes for an appointment type.
type TypeInfo struct {
	Label string
	Color string // hex, overridable by TUI themes
}

// typeInfos is the single mapping from type to display attributes.
// Resolved by lookup, never by substring matching on free-form strings.
var typeInfos = map[Type]TypeInfo{
	TypeConsultation: {Label: "Consultation", Color: "#89b4fa"},
	TypeFollowUp:     {Label: "Follow-up", Color: "#a6e3a1"},
	TypeSurgery:      {Label: "Surgery", Color: "#f38ba8"},
	TypeStudy:        {Label: "Study", Color: "#f9e2af"},
	TypeOther:        {Label: "Other", Color: "#cdd6f4"},
}

// Valid returns true if the type is a known value.
func (t Type) Valid() bool {
	_, ok := typeInfos[t]
	return ok
}

// Info returns the display attributes for the type.
// Unknown types fall back to TypeOther.
func (t Type) Info() TypeInfo {
	if info, ok := typeInfos[t]; ok {
		return info
	}
	return typeInfos[TypeOther]
}

// ParseType converts a string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Appointment represents a scheduled clinic visit: a time interval with a
// patient, a display type and a lifecycle status. Start and End are instants;
// End is always after Start for a valid appointment.
type Appointment struct {
	ID          string
	PatientName string
	Type        Type
	Status      Status
	Start       time.Time
	End         time.Time
	Notes       string
	CreatedAt   time.Time
}

// New creates a new Appointment with validation.
// end must be strictly after start.
func New(patientName string, typ Type, start, end time.Time) (*Appointment, error) {
	if patientName == "" {
		return nil, ErrEmptyPatient
	}
	if !typ.Valid() {
		return nil, ErrInvalidType
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: start=%v end=%v", ErrEndBeforeStart, start, end)
	}

	return &Appointment{
		ID:          uuid.NewString(),
		PatientName: patientName,
		Type:        typ,
		Status:      StatusPending,
		Start:       start,
		End:         end,
		CreatedAt:   time.Now(),
	}, nil
}

// Draggable returns true if the appointment can still be rescheduled.
// Cancelled and completed appointments are frozen in place.
func (a *Appointment) Draggable() bool {
	return a.Status != StatusCancelled && a.Status != StatusDone
}

// Duration returns the appointment length.
func (a *Appointment) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// OverlapsWith returns true if this appointment overlaps another in time.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	if other == nil {
		return false
	}
	return a.Start.Before(other.End) && other.Start.Before(a.End)
}

// OnDay returns true if the appointment starts on the given calendar day.
func (a *Appointment) OnDay(day time.Time) bool {
	return a.Start.Year() == day.Year() && a.Start.YearDay() == day.YearDay()
}
