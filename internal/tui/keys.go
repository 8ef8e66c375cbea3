package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModePrompt {
		return m.handlePromptKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Week navigation
	case "h", "left":
		m.weekStart = m.weekStart.AddDate(0, 0, -7)
		m.loading = true
		m.dragger.Cancel()
		return m, commands.LoadWeek(m.scheduler, m.weekStart)
	case "l", "right":
		m.weekStart = m.weekStart.AddDate(0, 0, 7)
		m.loading = true
		m.dragger.Cancel()
		return m, commands.LoadWeek(m.scheduler, m.weekStart)
	case "t":
		m.weekStart = dateutil.WeekStart(m.Now())
		m.loading = true
		m.dragger.Cancel()
		return m, commands.LoadWeek(m.scheduler, m.weekStart)

	// Scrolling
	case "j", "down":
		m.scrollOffset++
		m.clampScroll()
	case "k", "up":
		m.scrollOffset--
		m.clampScroll()
	case "g":
		m.scrollOffset = 0
	case "G":
		m.scrollOffset = m.maxScroll()

	// Prompt
	case "n":
		m.mode = ModePrompt
		m.prompt.SetValue("/new ")
		m.prompt.Focus()
		m.clampScroll()
		return m, textinput.Blink
	case "/":
		m.mode = ModePrompt
		m.prompt.SetValue("/")
		m.prompt.Focus()
		m.clampScroll()
		return m, textinput.Blink

	// Status changes on the selected appointment
	case "c":
		return m.setSelectedStatus(appointment.StatusConfirmed)
	case "d":
		return m.setSelectedStatus(appointment.StatusDone)
	case "x":
		return m.setSelectedStatus(appointment.StatusCancelled)
	case "u":
		return m.setSelectedStatus(appointment.StatusNoShow)
	case "p":
		return m.setSelectedStatus(appointment.StatusPending)

	// Clipboard
	case "y":
		a := m.selectedAppt()
		if a == nil {
			return m.withStatus("Nothing selected")
		}
		text := fmt.Sprintf("%s %s-%s %s (%s)",
			a.Start.Format("2006-01-02"),
			a.Start.Format("15:04"), a.End.Format("15:04"),
			a.PatientName, a.Type.Info().Label)
		if err := clipboard.WriteAll(text); err != nil {
			return m.withStatus(fmt.Sprintf("Clipboard: %v", err))
		}
		return m.withStatus("Copied")

	case "r":
		m.loading = true
		return m, commands.LoadWeek(m.scheduler, m.weekStart)

	case "esc":
		if m.dragger.Active() {
			m.dragger.Cancel()
			return m, nil
		}
		m.selected = ""
	}
	return m, nil
}

// handlePromptKeys handles keys while the command prompt is focused.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil
	case "enter":
		input := m.prompt.Value()
		m.mode = ModeNormal
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m.execPrompt(input)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) setSelectedStatus(status appointment.Status) (tea.Model, tea.Cmd) {
	a := m.selectedAppt()
	if a == nil {
		return m.withStatus("Nothing selected")
	}
	return m, commands.SetStatus(m.scheduler, a.ID, status)
}

func (m Model) withStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusTime = m.Now().Add(3 * time.Second)
	return m, clearStatusLater()
}
