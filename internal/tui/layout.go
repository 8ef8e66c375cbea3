package tui

import (
	"math"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
	"github.com/LataroCaballero/clinical-agenda/internal/grid"
)

// Layout constants.
const (
	defaultColWidth = 18
	minColWidth     = 8
	gutterWidth     = 6 // time labels, "09:00 "
	gridTop         = 2 // title row + day header row
	footerRows      = 2 // status line + help line
	promptRows      = 3 // bordered prompt box
)

// unitsPerRow returns the axis units covered by one terminal row.
// One row renders one snap step.
func (m *Model) unitsPerRow() float64 {
	return m.axis.SnapUnits(m.config.Grid.SnapMinutes)
}

// totalRows returns the number of grid rows in the full visible window.
func (m *Model) totalRows() int {
	return int(math.Round(m.axis.Height() / m.unitsPerRow()))
}

// gridRows returns the number of grid rows that fit on screen.
func (m *Model) gridRows() int {
	rows := m.height - gridTop - footerRows
	if m.mode == ModePrompt {
		rows -= promptRows
	}
	if rows < 0 {
		rows = 0
	}
	return rows
}

// maxScroll returns the largest valid scroll offset.
func (m *Model) maxScroll() int {
	max := m.totalRows() - m.gridRows()
	if max < 0 {
		max = 0
	}
	return max
}

// clampScroll keeps the scroll offset within the grid.
func (m *Model) clampScroll() {
	if m.scrollOffset > m.maxScroll() {
		m.scrollOffset = m.maxScroll()
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// calculateColWidth splits the width left of the gutter across the day columns.
func (m *Model) calculateColWidth() int {
	w := (m.width - gutterWidth) / numDays
	if w < minColWidth {
		w = minColWidth
	}
	return w
}

// rowOffset maps a screen row to the axis offset of its top edge.
func (m *Model) rowOffset(screenRow int) float64 {
	return float64(screenRow-gridTop+m.scrollOffset) * m.unitsPerRow()
}

// rowMinutes maps a screen row to its minute-of-day.
func (m *Model) rowMinutes(screenRow int) int {
	return m.axis.Range.MinMinutes + (screenRow-gridTop+m.scrollOffset)*m.config.Grid.SnapMinutes
}

// pointerAt converts terminal cell coordinates into a drag pointer.
// X stays in cells relative to the day area; Y becomes axis units.
func (m *Model) pointerAt(x, y int) grid.Pointer {
	return grid.Pointer{
		X: float64(x - gutterWidth),
		Y: m.rowOffset(y),
	}
}

// hit is a resolved mouse position over an appointment block.
type hit struct {
	appt         *appointment.Appointment
	day          int
	box          grid.PackedBox
	resizeHandle bool // pointer is on the block's bottom row
}

// hitTest resolves terminal cell coordinates to the appointment block under
// them, if any. Side-by-side blocks split their day column proportionally,
// mirroring the renderer.
func (m *Model) hitTest(x, y int) (hit, bool) {
	if y < gridTop || y >= gridTop+m.gridRows() {
		return hit{}, false
	}
	if x < gutterWidth {
		return hit{}, false
	}
	day := (x - gutterWidth) / m.colWidth
	if day < 0 || day >= numDays {
		return hit{}, false
	}
	dayX := float64((x - gutterWidth) % m.colWidth)

	rowTop := m.rowOffset(y)
	rowBottom := rowTop + m.unitsPerRow()

	for _, box := range m.layouts[day] {
		if box.Top >= rowBottom || box.Bottom() <= rowTop {
			continue
		}
		subWidth := float64(m.colWidth) / float64(box.TotalColumns)
		left := float64(box.Column) * subWidth
		if dayX < left || dayX >= left+subWidth {
			continue
		}
		return hit{
			appt:         box.Event,
			day:          day,
			box:          box,
			resizeHandle: box.Bottom() <= rowBottom+0.001,
		}, true
	}
	return hit{}, false
}

// boxRowSpan returns the screen rows a packed box covers, clipped to the
// visible grid. ok is false when the box is entirely off screen.
func (m *Model) boxRowSpan(box grid.LayoutBox) (top, bottom int, ok bool) {
	u := m.unitsPerRow()
	first := int(math.Floor(box.Top/u)) - m.scrollOffset + gridTop
	last := int(math.Ceil(box.Bottom()/u)) - m.scrollOffset + gridTop

	if first < gridTop {
		first = gridTop
	}
	limit := gridTop + m.gridRows()
	if last > limit {
		last = limit
	}
	if first >= last {
		return 0, 0, false
	}
	return first, last, true
}
