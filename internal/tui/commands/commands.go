// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/grid"
	"github.com/LataroCaballero/clinical-agenda/internal/ics"
)

// WeekLoadedMsg is sent when a week's appointments are loaded.
type WeekLoadedMsg struct {
	Start        time.Time
	Appointments []*appointment.Appointment
}

// OpAppliedMsg is sent when a scheduler mutation succeeded.
type OpAppliedMsg struct {
	Desc string
}

// ImportedMsg is sent when an ICS import completed.
type ImportedMsg struct {
	Count int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadWeek loads the appointments of the week starting at weekStart.
func LoadWeek(s appointment.Scheduler, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		from := weekStart
		to := weekStart.AddDate(0, 0, 7)

		appts, err := s.ListRange(ctx, from, to)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return WeekLoadedMsg{Start: weekStart, Appointments: appts}
	}
}

// ApplyMove reschedules an appointment per a committed drag.
func ApplyMove(s appointment.Scheduler, cmd *grid.MoveCommand) tea.Cmd {
	return func() tea.Msg {
		if err := s.Move(context.Background(), cmd.EventID, cmd.NewStart, cmd.NewEnd); err != nil {
			return ErrMsg{Err: err}
		}
		return OpAppliedMsg{Desc: fmt.Sprintf("Moved to %s", cmd.NewStart.Format("Mon 15:04"))}
	}
}

// ApplyResize changes an appointment's end per a committed resize drag.
func ApplyResize(s appointment.Scheduler, cmd *grid.ResizeCommand) tea.Cmd {
	return func() tea.Msg {
		if err := s.Resize(context.Background(), cmd.EventID, cmd.NewEnd); err != nil {
			return ErrMsg{Err: err}
		}
		return OpAppliedMsg{Desc: fmt.Sprintf("Resized to %s", cmd.NewEnd.Format("15:04"))}
	}
}

// SetStatus updates an appointment's status.
func SetStatus(s appointment.Scheduler, id string, status appointment.Status) tea.Cmd {
	return func() tea.Msg {
		if err := s.SetStatus(context.Background(), id, status); err != nil {
			return ErrMsg{Err: err}
		}
		return OpAppliedMsg{Desc: fmt.Sprintf("Marked %s", status)}
	}
}

// CreateAppointment stores a new appointment.
func CreateAppointment(s appointment.Scheduler, a *appointment.Appointment) tea.Cmd {
	return func() tea.Msg {
		if err := s.Create(context.Background(), a); err != nil {
			return ErrMsg{Err: err}
		}
		return OpAppliedMsg{Desc: fmt.Sprintf("Booked %s", a.PatientName)}
	}
}

// ImportCalendar imports appointments from an ICS file.
func ImportCalendar(s appointment.Scheduler, path string, opts ics.Options) tea.Cmd {
	return func() tea.Msg {
		appts, err := ics.ImportFile(path, opts)
		if err != nil {
			return ErrMsg{Err: err}
		}
		ctx := context.Background()
		count := 0
		for _, a := range appts {
			if err := s.Create(ctx, a); err != nil {
				continue // overlaps with an existing booking, skip
			}
			count++
		}
		return ImportedMsg{Count: count}
	}
}
