package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/dateutil"
	"github.com/LataroCaballero/clinical-agenda/internal/grid"
)

// render draws the whole screen: title, day headers, grid, footer.
func (m Model) render() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	pv := m.currentPreview()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle())
	lines = append(lines, m.renderDayHeaders())

	bottom := gridTop + m.gridRows()
	for row := gridTop; row < bottom; row++ {
		lines = append(lines, m.renderRow(row, pv))
	}

	if m.mode == ModePrompt {
		lines = append(lines, strings.Split(m.renderPrompt(), "\n")...)
	}
	lines = append(lines, m.renderStatusLine())
	lines = append(lines, m.renderHelpLine())

	return strings.Join(lines, "\n")
}

func (m Model) renderTitle() string {
	weekEnd := m.weekStart.AddDate(0, 0, 6)
	title := "Clinical Agenda"
	rangeText := fmt.Sprintf("%s - %s", m.weekStart.Format("Jan 02"), weekEnd.Format("Jan 02, 2006"))
	if m.loading {
		rangeText += "  loading..."
	}

	left := m.styles.TitleStyle.Render(title)
	right := m.styles.TimeColumnStyle.Render(rangeText)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + m.styles.EmptyCellStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m Model) renderDayHeaders() string {
	var b strings.Builder
	b.WriteString(m.styles.TimeColumnStyle.Render(strings.Repeat(" ", gutterWidth)))

	today := dateutil.TruncateToDay(m.Now())
	for d := 0; d < numDays; d++ {
		day := m.day(d)
		label := day.Format("Mon 02")

		style := m.styles.DayHeaderStyle
		switch {
		case m.resolver.IsSurgeryDay(day):
			label += "*" // surgery day, always bookable
			style = m.styles.DayHeaderSurgeryStyle
		case dateutil.SameDay(day, today):
			style = m.styles.DayHeaderTodayStyle
		case m.resolver.IsBlocked(day):
			style = m.styles.DayHeaderBlockedStyle
		}
		b.WriteString(style.Render(padCenter(label, m.colWidth)))
	}
	return b.String()
}

// renderRow draws one grid row: the time gutter and each day's cell.
func (m Model) renderRow(row int, pv dragPreview) string {
	var b strings.Builder

	minutes := m.rowMinutes(row)
	label := strings.Repeat(" ", gutterWidth)
	if minutes%60 == 0 {
		label = runewidth.FillRight(appointment.MinutesToTime(minutes), gutterWidth)
	}
	b.WriteString(m.styles.TimeColumnStyle.Render(label))

	for d := 0; d < numDays; d++ {
		b.WriteString(m.renderDayCell(d, row, pv))
	}
	return b.String()
}

// renderDayCell draws one day column's slice of a grid row. Side-by-side
// blocks split the column proportionally; hitTest mirrors this split.
func (m Model) renderDayCell(d, row int, pv dragPreview) string {
	day := m.day(d)
	rowTop := m.rowOffset(row)
	rowBottom := rowTop + m.unitsPerRow()

	// The drag preview paints over the whole target cell.
	if pv.active && pv.day == d && pv.top < rowBottom && pv.bottom > rowTop {
		text := ""
		if pv.top >= rowTop && pv.top < rowBottom {
			text = pv.label
		}
		return m.styles.DragPreviewStyle.Render(runewidth.FillRight(runewidth.Truncate(text, m.colWidth, "…"), m.colWidth))
	}

	type segment struct {
		left, right int
		text        string
		style       lipgloss.Style
	}
	var segs []segment
	for _, box := range m.layouts[d] {
		if box.Top >= rowBottom || box.Bottom() <= rowTop {
			continue
		}
		sub := float64(m.colWidth) / float64(box.TotalColumns)
		left := int(math.Round(float64(box.Column) * sub))
		right := int(math.Round(float64(box.Column+1) * sub))
		if right <= left {
			right = left + 1
		}
		if right > m.colWidth {
			right = m.colWidth
		}

		text := ""
		if first, _, ok := m.boxRowSpan(box.LayoutBox); ok && first == row {
			text = box.Event.Start.Format("15:04") + " " + box.Event.PatientName
		}
		segs = append(segs, segment{
			left:  left,
			right: right,
			text:  text,
			style: m.styles.ApptStyle(box.Event, box.Event.ID == m.selected),
		})
	}
	sort.Slice(segs, func(i, j int) bool { return segs[i].left < segs[j].left })

	var b strings.Builder
	x := 0
	for _, s := range segs {
		if s.left > x {
			b.WriteString(m.renderEmpty(day, rowTop, rowBottom, s.left-x))
			x = s.left
		}
		if s.right <= x {
			continue
		}
		w := s.right - x
		b.WriteString(s.style.Render(runewidth.FillRight(runewidth.Truncate(s.text, w, "…"), w)))
		x = s.right
	}
	if x < m.colWidth {
		b.WriteString(m.renderEmpty(day, rowTop, rowBottom, m.colWidth-x))
	}
	return b.String()
}

// renderEmpty draws background cells: blocked shading, the current-time rule,
// or plain background.
func (m Model) renderEmpty(day time.Time, rowTop, rowBottom float64, width int) string {
	now := m.Now()
	if dateutil.SameDay(day, now) {
		if off, visible := m.axis.NowOffset(now); visible && off >= rowTop && off < rowBottom {
			return m.styles.CurrentTimeStyle.Render(strings.Repeat("─", width))
		}
	}
	if m.resolver.IsBlocked(day) {
		return m.styles.BlockedCellStyle.Render(strings.Repeat("░", width))
	}
	return m.styles.EmptyCellStyle.Render(strings.Repeat(" ", width))
}

func (m Model) renderPrompt() string {
	style := m.styles.PromptStyle
	if m.mode == ModePrompt {
		style = m.styles.PromptFocusedStyle
	}
	return style.Width(m.width - 2).Render(m.prompt.View())
}

func (m Model) renderStatusLine() string {
	text := m.statusMsg
	style := m.styles.StatusStyle
	if strings.HasPrefix(text, "Error:") {
		style = m.styles.ErrorStyle
	}
	if text == "" {
		if a := m.selectedAppt(); a != nil {
			text = fmt.Sprintf("%s  %s-%s  %s  [%s]",
				a.PatientName,
				a.Start.Format("15:04"), a.End.Format("15:04"),
				a.Type.Info().Label, a.Status)
		}
	}
	return style.Render(runewidth.FillRight(runewidth.Truncate(text, m.width, "…"), m.width))
}

func (m Model) renderHelpLine() string {
	help := "q quit · h/l week · t today · j/k scroll · n new · click select · drag move · edge drag resize · c/d/x/u/p status · y copy"
	return m.styles.HelpStyle.Render(runewidth.FillRight(runewidth.Truncate(help, m.width, "…"), m.width))
}

// dragPreview is the ghost block rendered while a drag is past the threshold.
type dragPreview struct {
	active bool
	day    int
	top    float64
	bottom float64
	label  string
}

// currentPreview projects the in-flight drag session into grid coordinates.
func (m Model) currentPreview() dragPreview {
	s := m.dragger.Session()
	if s == nil || !s.Dragging() {
		return dragPreview{}
	}

	upm := m.axis.UnitsPerMinute()
	minuteDelta := int(math.Round(s.DeltaY() / upm))

	switch s.Mode {
	case grid.ModeResize:
		newEnd := s.OriginEnd.Add(time.Duration(minuteDelta) * time.Minute)
		minEnd := s.OriginStart.Add(time.Duration(m.config.Grid.SnapMinutes) * time.Minute)
		if newEnd.Before(minEnd) {
			newEnd = minEnd
		}
		return dragPreview{
			active: true,
			day:    s.OriginDay,
			top:    m.axis.Offset(s.OriginStart),
			bottom: m.axis.Offset(newEnd),
			label:  fmt.Sprintf("%s-%s", s.OriginStart.Format("15:04"), newEnd.Format("15:04")),
		}

	default: // grid.ModeMove
		newStart := s.OriginStart.Add(time.Duration(minuteDelta) * time.Minute)
		newEnd := newStart.Add(s.OriginEnd.Sub(s.OriginStart))
		return dragPreview{
			active: true,
			day:    s.TargetDay(),
			top:    m.axis.Offset(newStart),
			bottom: m.axis.Offset(newEnd),
			label:  fmt.Sprintf("%s-%s", newStart.Format("15:04"), newEnd.Format("15:04")),
		}
	}
}

func padCenter(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "…")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
