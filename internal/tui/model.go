package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LataroCaballero/clinical-agenda/internal/agenda"
	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/config"
	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
	"github.com/LataroCaballero/clinical-agenda/internal/grid"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/commands"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
)

const numDays = 7

// Model is the main TUI model.
type Model struct {
	// Dependencies
	scheduler appointment.Scheduler
	config    *config.Config
	resolver  *agenda.Resolver

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Layout engine
	axis    grid.Axis
	dragger *grid.Dragger

	// State
	weekStart time.Time // Monday of the displayed week
	appts     []*appointment.Appointment
	layouts   [numDays][]grid.PackedBox
	selected  string // ID of the selected appointment, "" for none
	mode      Mode
	loading   bool

	// Components
	prompt textinput.Model

	// Terminal dimensions and layout
	width        int
	height       int
	colWidth     int
	scrollOffset int // grid rows scrolled past the top

	// Messages
	statusMsg  string
	statusTime time.Time
	lastErr    error

	// Injectable clock
	Now func() time.Time
}

// New creates a new TUI model.
func New(s appointment.Scheduler, cfg *config.Config, resolver *agenda.Resolver) (*Model, error) {
	tr, err := cfg.TimeRange()
	if err != nil {
		return nil, err
	}
	axis := grid.NewAxis(tr, cfg.Grid.HourHeight)

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}

	ti := textinput.New()
	ti.Placeholder = "/new Garcia @ 2026-09-07 09:00-09:30 consultation"
	ti.CharLimit = 200

	m := &Model{
		scheduler: s,
		config:    cfg,
		resolver:  resolver,
		theme:     t,
		styles:    NewStyles(t),
		axis:      axis,
		weekStart: dateutil.WeekStart(time.Now()),
		mode:      ModeNormal,
		prompt:    ti,
		colWidth:  defaultColWidth,
		loading:   true,
		Now:       time.Now,
	}
	m.dragger = grid.NewDragger(m.dragMetrics())
	return m, nil
}

// dragMetrics derives the pointer geometry from the current terminal layout.
// X is measured in terminal cells, Y in axis units.
func (m *Model) dragMetrics() grid.Metrics {
	return grid.Metrics{
		Axis:        m.axis,
		SnapMinutes: m.config.Grid.SnapMinutes,
		Threshold:   m.config.Grid.DragThreshold,
		DayWidth:    float64(numDays * m.colWidth),
		NumDays:     numDays,
	}
}

// day returns the date of the given day column in the displayed week.
func (m *Model) day(index int) time.Time {
	return m.weekStart.AddDate(0, 0, index)
}

// selectedAppt returns the selected appointment, or nil.
func (m *Model) selectedAppt() *appointment.Appointment {
	if m.selected == "" {
		return nil
	}
	for _, a := range m.appts {
		if a.ID == m.selected {
			return a
		}
	}
	return nil
}

// rebuildLayouts packs every day column of the loaded week.
func (m *Model) rebuildLayouts() {
	minHeight := m.axis.SnapUnits(m.config.Grid.SnapMinutes)
	for d := 0; d < numDays; d++ {
		day := m.day(d)
		var dayAppts []*appointment.Appointment
		for _, a := range m.appts {
			if a.OnDay(day) {
				dayAppts = append(dayAppts, a)
			}
		}
		m.layouts[d] = grid.PackDay(dayAppts, m.axis, minHeight)
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadWeek(m.scheduler, m.weekStart)
}

// View renders the TUI.
func (m Model) View() string {
	return m.render()
}

// Run starts the TUI.
func Run(s appointment.Scheduler, cfg *config.Config) error {
	resolver, err := agenda.NewResolver(cfg.AgendaSettings())
	if err != nil {
		return err
	}
	m, err := New(s, cfg, resolver)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
