package grid

// reorder turns the pointer position into at most one onMove call for the
// dragged item currently at index.
func (s *State[K]) reorder(index int) {
	if s.host == nil {
		return
	}

	raw := s.proposeTarget()
	if raw == NoSlot {
		return
	}

	count := s.host.ItemCount()
	proposed := limitStep(raw, s.target, index, s.host.Geometry().Columns, count)

	anchorIndex, anchorOffset, reanchor := s.captureAnchor(proposed, index)

	if proposed != s.target {
		s.target = proposed
		s.pulse()
	}

	if !shouldCommit(index, proposed, count) {
		return
	}

	if s.onMove != nil {
		s.onMove(index, proposed)
	}

	if reanchor {
		if sc := s.scroller(); sc != nil {
			sc.ScrollToItem(anchorIndex, anchorOffset)
		}
	}

	// Re-derive rather than assume proposed: the end slot and removal
	// shifting make the two differ.
	if n := s.indexOf(s.draggingKey); n >= 0 {
		s.draggingIndex = n
	}
}

// proposeTarget asks the geometry mapper for the raw slot under the pointer.
func (s *State[K]) proposeTarget() int {
	g := s.host.Geometry()
	grid := s.bounds.grid
	if grid.Empty() {
		return NoSlot
	}
	s.bounds.cellWidth = CellWidth(grid.Size.Width, g)

	first := 0
	if sc := s.scroller(); sc != nil {
		first = sc.FirstVisibleIndex()
	}
	return TargetSlot(s.pointer, grid, g, s.cellSize(), first, s.host.ItemCount())
}

// limitStep keeps a proposal within one row of the previous target (or of
// index when there is none) so that transient geometry noise cannot jump a
// page in a single event. Long drags still get there over several events.
func limitStep(raw, last, index, columns, count int) int {
	if last < 0 {
		last = index
	}
	step := max(columns, 1)
	lo := max(last-step, 0)
	hi := min(last+step, count)
	// hi is capped at count, so forward moves can address the end slot but
	// never go past it.
	return clampInt(raw, lo, hi)
}

// shouldCommit reports whether moving index to proposed changes the order.
// The end slot is a non-move for an item that is already last.
func shouldCommit(index, proposed, count int) bool {
	if proposed == index {
		return false
	}
	if proposed == count && index == count-1 {
		return false
	}
	return true
}

func (s *State[K]) captureAnchor(proposed, index int) (int, float32, bool) {
	if s.anchorPolicy != ScrollAnchorPinDragged || proposed == index {
		return 0, 0, false
	}
	sc := s.scroller()
	if sc == nil {
		return 0, 0, false
	}
	first := sc.FirstVisibleIndex()
	key, ok := s.host.KeyAt(first)
	if !ok || key != s.draggingKey {
		return 0, 0, false
	}
	return first, sc.FirstVisibleOffset(), true
}

func (s *State[K]) pulse() {
	if !s.hapticsEnabled || s.haptics == nil {
		return
	}
	s.haptics.Perform(HapticMove)
}
