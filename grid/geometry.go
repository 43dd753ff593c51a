package grid

import (
	"math"

	"fyne.io/fyne/v2"
)

// TargetSlot maps a pointer in root coordinates to a slot of the static
// row/column partition of the grid.
//
// Slots rather than items are targeted: items move under a stationary pointer
// after each reorder, so targeting "the item under the pointer" oscillates.
//
// Rows are anchored to the first visible row only. The sub-row scroll offset
// jumps while a fling is being stopped, so it is left out on purpose; the
// result is slightly off when the anchor row is partly scrolled away but it
// never jumps by a page.
//
// The result is clamped to [0, itemCount], itemCount being the "insert at
// end" slot. NoSlot is returned while the grid bounds are unknown.
func TargetSlot(pointer fyne.Position, grid Rect, g Geometry, cell fyne.Size, firstVisible, itemCount int) int {
	if grid.Empty() {
		return NoSlot
	}

	cols := g.Columns
	if cols < 1 {
		cols = 1
	}

	cellW := max(cell.Width, 1)
	cellH := max(cell.Height, 1)

	localX := max(pointer.X-grid.Pos.X-g.Padding.Left, 0)
	localY := max(pointer.Y-grid.Pos.Y-g.Padding.Top, 0)

	stepX := cellW + g.HSpacing
	stepY := cellH + g.VSpacing

	col := clampInt(int(math.Floor(float64(localX/stepX))), 0, cols-1)

	firstRow := 0
	if firstVisible > 0 {
		firstRow = firstVisible / cols
	}
	row := firstRow + int(math.Floor(float64(localY/stepY)))
	if row < 0 {
		row = 0
	}

	return clampInt(row*cols+col, 0, itemCount)
}

// CellWidth is the width of one column when the grid is width wide.
func CellWidth(width float32, g Geometry) float32 {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	content := width - g.Padding.Left - g.Padding.Right
	return max((content-g.HSpacing*float32(cols-1))/float32(cols), 1)
}

// slotOrigin is the top-left of slot i relative to the grid content origin.
func slotOrigin(i int, g Geometry, cell fyne.Size) fyne.Position {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	row, col := i/cols, i%cols
	return fyne.NewPos(
		g.Padding.Left+float32(col)*(cell.Width+g.HSpacing),
		g.Padding.Top+float32(row)*(cell.Height+g.VSpacing),
	)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
