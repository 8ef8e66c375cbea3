package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LataroCaballero/clinical-agenda/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.colWidth = m.calculateColWidth()
		m.clampScroll()
		m.dragger.SetMetrics(m.dragMetrics())
		m.prompt.Width = m.width - gutterWidth
		return m, nil

	case commands.WeekLoadedMsg:
		m.weekStart = msg.Start
		m.appts = msg.Appointments
		m.loading = false
		m.rebuildLayouts()
		if m.selectedAppt() == nil {
			m.selected = ""
		}
		return m, nil

	case commands.OpAppliedMsg:
		m.statusMsg = msg.Desc
		m.statusTime = m.Now().Add(3 * time.Second)
		return m, tea.Batch(
			commands.LoadWeek(m.scheduler, m.weekStart),
			clearStatusLater(),
		)

	case commands.ImportedMsg:
		m.statusMsg = fmt.Sprintf("Imported %d appointments", msg.Count)
		m.statusTime = m.Now().Add(3 * time.Second)
		return m, tea.Batch(
			commands.LoadWeek(m.scheduler, m.weekStart),
			clearStatusLater(),
		)

	case commands.ErrMsg:
		m.lastErr = msg.Err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.Now().Add(5 * time.Second)
		m.loading = false
		return m, tea.Batch(
			commands.LoadWeek(m.scheduler, m.weekStart),
			clearStatusLater(),
		)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.Now().Add(3 * time.Second)
		return m, clearStatusLater()

	case commands.ClearStatusMsg:
		if m.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	// Prompt consumes everything else while focused.
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

func clearStatusLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
