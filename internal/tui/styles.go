// Package tui provides the terminal user interface for the clinical agenda.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorBlocked     lipgloss.Color
	colorSurgery     lipgloss.Color
	colorCurrent     lipgloss.Color
	colorWarning     lipgloss.Color

	// Title style
	TitleStyle lipgloss.Style

	// Header styles
	DayHeaderStyle        lipgloss.Style
	DayHeaderTodayStyle   lipgloss.Style
	DayHeaderBlockedStyle lipgloss.Style
	DayHeaderSurgeryStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Grid cell styles
	EmptyCellStyle   lipgloss.Style
	BlockedCellStyle lipgloss.Style
	SurgeryCellStyle lipgloss.Style
	CurrentTimeStyle lipgloss.Style

	// Appointment block styles
	ApptStyles        map[appointment.Type]lipgloss.Style
	ApptFrozenStyle   lipgloss.Style // cancelled or done, not draggable
	ApptSelectedStyle lipgloss.Style
	DragPreviewStyle  lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// Prompt box
	PromptStyle        lipgloss.Style
	PromptFocusedStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}

	s.colorBg = theme.Color(t.Bg)
	s.colorBgHighlight = theme.Color(t.BgHighlight)
	s.colorBgSelection = theme.Color(t.BgSelection)
	s.colorFg = theme.Color(t.Fg)
	s.colorFgMuted = theme.Color(t.FgMuted)
	s.colorAccent = theme.Color(t.Accent)
	s.colorBlocked = theme.Color(t.Blocked)
	s.colorSurgery = theme.Color(t.Surgery)
	s.colorCurrent = theme.Color(t.Current)
	s.colorWarning = theme.Color(t.Warning)

	s.TitleStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Bold(true)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Align(lipgloss.Center)
	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent).
		Bold(true)
	s.DayHeaderBlockedStyle = s.DayHeaderStyle.
		Foreground(s.colorFgMuted)
	s.DayHeaderSurgeryStyle = s.DayHeaderStyle.
		Foreground(s.colorSurgery).
		Bold(true)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Background(s.colorBg)
	s.BlockedCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBlocked)
	s.SurgeryCellStyle = lipgloss.NewStyle().
		Foreground(s.colorSurgery).
		Background(s.colorBg)
	s.CurrentTimeStyle = lipgloss.NewStyle().
		Foreground(s.colorCurrent).
		Background(s.colorBg)

	s.ApptStyles = make(map[appointment.Type]lipgloss.Style)
	for _, typ := range []appointment.Type{
		appointment.TypeConsultation,
		appointment.TypeFollowUp,
		appointment.TypeSurgery,
		appointment.TypeStudy,
		appointment.TypeOther,
	} {
		s.ApptStyles[typ] = lipgloss.NewStyle().
			Foreground(s.colorBg).
			Background(theme.Color(typ.Info().Color))
	}
	s.ApptFrozenStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight).
		Strikethrough(true)
	s.ApptSelectedStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgSelection).
		Bold(true)
	s.DragPreviewStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorWarning)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorCurrent).
		Background(s.colorBg)
	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorFgMuted)
	s.PromptFocusedStyle = s.PromptStyle.
		BorderForeground(s.colorAccent)

	return s
}

// ApptStyle returns the block style for an appointment, honoring selection
// and frozen state.
func (s *Styles) ApptStyle(a *appointment.Appointment, selected bool) lipgloss.Style {
	if selected {
		return s.ApptSelectedStyle
	}
	if !a.Draggable() {
		return s.ApptFrozenStyle
	}
	if st, ok := s.ApptStyles[a.Type]; ok {
		return st
	}
	return s.ApptStyles[appointment.TypeOther]
}
