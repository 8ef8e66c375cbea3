package grid

import (
	"sort"

	"github.com/LataroCaballero/clinical-agenda/internal/appointment"
)

// LayoutBox is an appointment positioned on the time axis for one day column.
type LayoutBox struct {
	Event  *appointment.Appointment
	Top    float64
	Height float64
}

// Bottom returns the box's lower edge.
func (b LayoutBox) Bottom() float64 {
	return b.Top + b.Height
}

// NewLayoutBox positions an appointment on the axis. The height is floored at
// minHeight so degenerate or sub-slot intervals stay visible; a non-positive
// minHeight floors at one default snap step.
func NewLayoutBox(a *appointment.Appointment, axis Axis, minHeight float64) LayoutBox {
	if minHeight <= 0 {
		minHeight = axis.SnapUnits(DefaultSnapMinutes)
	}
	height := a.Duration().Minutes() * axis.UnitsPerMinute()
	if height < minHeight {
		height = minHeight
	}
	return LayoutBox{
		Event:  a,
		Top:    axis.Offset(a.Start),
		Height: height,
	}
}

// PackedBox is a LayoutBox with its column assignment. Column is in
// [0, TotalColumns); every box in the same overlap group shares TotalColumns.
type PackedBox struct {
	LayoutBox
	Column       int
	TotalColumns int
}

// Pack assigns non-overlapping columns to a day's boxes so that concurrent
// appointments render side by side.
//
// Boxes are sorted by top edge, taller first on ties, then partitioned into
// overlap groups: a new group starts when a box's top clears the running
// maximum bottom edge of the current group. Grouping is transitive: a long
// box bridging two otherwise disjoint clusters merges them. Within a group,
// each box lands in the leftmost column whose last bottom edge fits above it,
// opening a new column when none does.
//
// Pack is pure and never rejects input; callers floor heights beforehand.
func Pack(boxes []LayoutBox) []PackedBox {
	if len(boxes) == 0 {
		return nil
	}

	sorted := make([]LayoutBox, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].Height > sorted[j].Height
	})

	result := make([]PackedBox, 0, len(sorted))

	groupStart := 0
	maxBottom := sorted[0].Bottom()
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && sorted[i].Top < maxBottom {
			if b := sorted[i].Bottom(); b > maxBottom {
				maxBottom = b
			}
			continue
		}

		result = append(result, packGroup(sorted[groupStart:i])...)

		if i < len(sorted) {
			groupStart = i
			maxBottom = sorted[i].Bottom()
		}
	}

	return result
}

// packGroup greedily assigns columns within one overlap group.
func packGroup(group []LayoutBox) []PackedBox {
	packed := make([]PackedBox, len(group))
	var columnBottoms []float64

	for i, box := range group {
		col := -1
		for c, bottom := range columnBottoms {
			if bottom <= box.Top {
				col = c
				break
			}
		}
		if col < 0 {
			col = len(columnBottoms)
			columnBottoms = append(columnBottoms, 0)
		}
		columnBottoms[col] = box.Bottom()
		packed[i] = PackedBox{LayoutBox: box, Column: col}
	}

	for i := range packed {
		packed[i].TotalColumns = len(columnBottoms)
	}
	return packed
}

// PackDay is a convenience that lays out and packs a day's appointments in
// one call.
func PackDay(appts []*appointment.Appointment, axis Axis, minHeight float64) []PackedBox {
	if len(appts) == 0 {
		return nil
	}
	boxes := make([]LayoutBox, 0, len(appts))
	for _, a := range appts {
		boxes = append(boxes, NewLayoutBox(a, axis, minHeight))
	}
	return Pack(boxes)
}
