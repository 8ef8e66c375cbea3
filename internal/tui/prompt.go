package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
	"github.com/LataroCaballero/clinical-agenda/internal/ics"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/commands"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/theme"
)

// execPrompt runs a submitted prompt command.
func (m Model) execPrompt(input string) (tea.Model, tea.Cmd) {
	input = strings.TrimSpace(input)
	if input == "" || input == "/" {
		return m, nil
	}

	cmd, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/new":
		return m.execNew(rest)
	case "/import":
		if rest == "" {
			return m.withStatus("Usage: /import <path.ics>")
		}
		from := m.weekStart.AddDate(0, 0, -28)
		to := m.weekStart.AddDate(0, 0, 56)
		return m, commands.ImportCalendar(m.scheduler, rest, ics.Options{From: from, To: to})
	case "/theme":
		if !theme.IsAvailable(rest) {
			return m.withStatus(fmt.Sprintf("Unknown theme %q (have: %s)", rest, strings.Join(theme.Available(), ", ")))
		}
		t, err := theme.Load(rest)
		if err != nil {
			return m.withStatus(fmt.Sprintf("Theme: %v", err))
		}
		m.theme = t
		m.styles = NewStyles(t)
		return m.withStatus("Theme: " + t.Name)
	case "/goto":
		day, err := dateutil.ParseDayKey(rest)
		if err != nil {
			return m.withStatus("Usage: /goto YYYY-MM-DD")
		}
		m.weekStart = dateutil.WeekStart(day)
		m.loading = true
		return m, commands.LoadWeek(m.scheduler, m.weekStart)
	case "/quit", "/q":
		return m, tea.Quit
	}
	return m.withStatus(fmt.Sprintf("Unknown command %q", cmd))
}

// execNew parses "<patient> @ <YYYY-MM-DD> <HH:MM>-<HH:MM> [type]" and books
// the appointment.
func (m Model) execNew(rest string) (tea.Model, tea.Cmd) {
	const usage = "Usage: /new <patient> @ <YYYY-MM-DD> <HH:MM>-<HH:MM> [type]"

	name, when, found := strings.Cut(rest, "@")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return m.withStatus(usage)
	}

	fields := strings.Fields(when)
	if len(fields) < 2 {
		return m.withStatus(usage)
	}

	day, err := dateutil.ParseDayKey(fields[0])
	if err != nil {
		return m.withStatus(usage)
	}

	startText, endText, found := strings.Cut(fields[1], "-")
	if !found {
		return m.withStatus(usage)
	}
	start, err := parseClock(day, startText)
	if err != nil {
		return m.withStatus(usage)
	}
	end, err := parseClock(day, endText)
	if err != nil {
		return m.withStatus(usage)
	}

	typ := appointment.TypeConsultation
	if len(fields) >= 3 {
		typ, err = appointment.ParseType(fields[2])
		if err != nil {
			return m.withStatus(fmt.Sprintf("Unknown type %q", fields[2]))
		}
	}

	if m.resolver.IsBlocked(day) {
		return m.withStatus("That day is blocked")
	}

	a, err := appointment.New(name, typ, start, end)
	if err != nil {
		return m.withStatus(fmt.Sprintf("Error: %v", err))
	}
	return m, commands.CreateAppointment(m.scheduler, a)
}

func parseClock(day time.Time, s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, err
	}
	return appointment.AtMinute(day, t.Hour()*60+t.Minute()), nil
}
