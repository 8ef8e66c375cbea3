package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/grid"
	"github.com/LataroCaballero/clinical-agenda/internal/tui/commands"
)

// handleMouseMsg wires terminal mouse events into the drag session.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModePrompt {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if !m.dragger.Active() {
			m.scrollOffset--
			m.clampScroll()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if !m.dragger.Active() {
			m.scrollOffset++
			m.clampScroll()
		}
		return m, nil
	case tea.MouseButtonRight:
		if msg.Action == tea.MouseActionPress {
			m.dragger.Cancel()
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		h, ok := m.hitTest(msg.X, msg.Y)
		if !ok {
			m.selected = ""
			if slot, ok := m.slotAt(msg.X, msg.Y); ok {
				return m.openQuickCreate(slot)
			}
			return m, nil
		}
		mode := grid.ModeMove
		if h.resizeHandle {
			mode = grid.ModeResize
		}
		err := m.dragger.Begin(h.appt, mode, m.pointerAt(msg.X, msg.Y), h.day)
		if errors.Is(err, grid.ErrNotDraggable) {
			m.selected = h.appt.ID
			return m.withStatus("Cancelled and done appointments cannot be rescheduled")
		}
		return m, nil

	case tea.MouseActionMotion:
		m.dragger.Move(m.pointerAt(msg.X, msg.Y))
		return m, nil

	case tea.MouseActionRelease:
		if !m.dragger.Active() {
			return m, nil
		}
		session := m.dragger.Session()
		result := m.dragger.Release()

		switch {
		case result.Clicked:
			m.selected = session.EventID
			return m, nil
		case result.Move != nil:
			return m, commands.ApplyMove(m.scheduler, result.Move)
		case result.Resize != nil:
			return m, commands.ApplyResize(m.scheduler, result.Resize)
		}
		return m, nil
	}

	return m, nil
}

// slotAt resolves terminal cell coordinates to the start of the empty grid
// slot under them. Blocked days yield no slot unless they are surgery days.
func (m Model) slotAt(x, y int) (time.Time, bool) {
	if y < gridTop || y >= gridTop+m.gridRows() {
		return time.Time{}, false
	}
	if x < gutterWidth {
		return time.Time{}, false
	}
	dayIndex := (x - gutterWidth) / m.colWidth
	if dayIndex < 0 || dayIndex >= numDays {
		return time.Time{}, false
	}
	day := m.day(dayIndex)
	if m.resolver.IsBlocked(day) {
		return time.Time{}, false
	}
	minutes := m.rowMinutes(y)
	return appointment.AtMinute(day, minutes), true
}

// openQuickCreate opens the prompt prefilled for booking the clicked slot,
// with the cursor positioned where the patient name goes.
func (m Model) openQuickCreate(slot time.Time) (tea.Model, tea.Cmd) {
	end := slot.Add(time.Duration(2*m.config.Grid.SnapMinutes) * time.Minute)
	m.mode = ModePrompt
	m.prompt.SetValue(fmt.Sprintf("/new  @ %s %s-%s consultation",
		slot.Format("2006-01-02"), slot.Format("15:04"), end.Format("15:04")))
	m.prompt.Focus()
	m.prompt.SetCursor(len("/new "))
	m.clampScroll()
	return m, textinput.Blink
}
