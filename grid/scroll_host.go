package grid

import (
	"math"

	"fyne.io/fyne/v2"
)

// scrollHost adapts the grid's container.Scroll to the Scroller interface.
// Visible ranges are derived from the offset and the uniform row height.
type scrollHost[T any, K comparable] struct {
	g *Grid[T, K]
}

func (h *scrollHost[T, K]) rowStep() float32 {
	return max(h.g.cellSize.Height, 1) + h.g.VSpacing
}

func (h *scrollHost[T, K]) firstRow() int {
	y := h.g.scroll.Offset.Y - h.g.Padding.Top
	if y <= 0 {
		return 0
	}
	return int(math.Floor(float64(y / h.rowStep())))
}

func (h *scrollHost[T, K]) FirstVisibleIndex() int {
	cols := max(h.g.Columns, 1)
	count := len(h.g.order)
	if count == 0 {
		return 0
	}
	return clampInt(h.firstRow()*cols, 0, count-1)
}

// rowTop is the content offset at which row r starts. Row 0 starts at the
// very top so the padding above it counts as part of its offset.
func (h *scrollHost[T, K]) rowTop(r int) float32 {
	if r <= 0 {
		return 0
	}
	return h.g.Padding.Top + float32(r)*h.rowStep()
}

func (h *scrollHost[T, K]) FirstVisibleOffset() float32 {
	return max(h.g.scroll.Offset.Y-h.rowTop(h.firstRow()), 0)
}

func (h *scrollHost[T, K]) maxOffset() float32 {
	s := h.g.scroll
	if s.Content == nil {
		return 0
	}
	return max(s.Content.Size().Height-s.Size().Height, 0)
}

func (h *scrollHost[T, K]) ScrollBy(delta float32) float32 {
	old := h.g.scroll.Offset.Y
	next := old + delta
	if next < 0 {
		next = 0
	} else if m := h.maxOffset(); next > m {
		next = m
	}
	if next == old {
		return 0
	}
	h.setOffset(next)
	return next - old
}

func (h *scrollHost[T, K]) CanScroll(forward bool) bool {
	if forward {
		return h.g.scroll.Offset.Y < h.maxOffset()-minConsumedScroll
	}
	return h.g.scroll.Offset.Y > 0
}

// StopScroll is a no-op: container.Scroll has no momentum scrolling.
func (h *scrollHost[T, K]) StopScroll() {}

// ScrollToItem scrolls so that the row of index starts offset above the top
// of the viewport. It is the inverse of FirstVisibleIndex and
// FirstVisibleOffset.
func (h *scrollHost[T, K]) ScrollToItem(index int, offset float32) {
	cols := max(h.g.Columns, 1)
	y := h.rowTop(index/cols) + offset
	h.setOffset(min(max(y, 0), h.maxOffset()))
}

func (h *scrollHost[T, K]) setOffset(y float32) {
	s := h.g.scroll
	s.Offset = fyne.NewPos(s.Offset.X, y)
	s.Refresh()
	h.g.publishBounds()
}
