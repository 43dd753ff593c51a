package grid

import (
	"math"

	"fyne.io/fyne/v2"
)

// State is the drag-to-reorder engine of one grid. All methods must be
// called from the UI goroutine.
//
// A State is created by the owner with the move callback, then bound to a
// Host (Grid does this). The host publishes item bounds on every layout
// pass and forwards pointer events to Press, Drag, End and Cancel.
type State[K comparable] struct {
	onMove         func(from, to int)
	hapticsEnabled bool
	haptics        HapticSink
	anchorPolicy   ScrollAnchorPolicy
	touchSlop      float32

	host      Host[K]
	onChanged func()

	phase Phase

	pendingKey   K
	pendingStart fyne.Position
	pendingGrab  fyne.Position

	draggingKey   K
	draggingIndex int
	grabOffset    fyne.Position
	pointer       fyne.Position
	target        int
	translation   fyne.Position

	frozenCellHeight float32

	bounds *bounds[K]
	scroll *autoScroller
}

// NewState creates the drag state for one grid. onMove must reorder the
// backing collection before it returns: remove the item at from, then insert
// it at to in the shortened collection (see Move).
//
// onMove(n-1, n) is never called: dropping the last item on the end slot
// leaves the order unchanged.
func NewState[K comparable](onMove func(from, to int), hapticFeedbackEnabled bool) *State[K] {
	s := &State[K]{
		onMove:         onMove,
		hapticsEnabled: hapticFeedbackEnabled,
		touchSlop:      DefaultTouchSlop,
		draggingIndex:  -1,
		target:         NoSlot,
		bounds:         newBounds[K](),
		scroll:         newAutoScroller(),
	}
	s.scroll.scroller = func() Scroller {
		if s.host == nil {
			return nil
		}
		return s.host.Scroller()
	}
	s.scroll.alive = func() bool { return s.phase == PhaseActive }
	s.scroll.onScroll = s.retarget
	return s
}

// Bind attaches the host that owns the items and the scroll container.
func (s *State[K]) Bind(h Host[K]) {
	s.host = h
}

// SetHapticSink sets where move cues go. Cues are only sent when haptic
// feedback was enabled in NewState.
func (s *State[K]) SetHapticSink(sink HapticSink) {
	s.haptics = sink
}

func (s *State[K]) HapticFeedbackEnabled() bool {
	return s.hapticsEnabled
}

// SetTouchSlop sets the travel needed to turn a pending press into a drag.
func (s *State[K]) SetTouchSlop(slop float32) {
	if slop < 0 {
		slop = 0
	}
	s.touchSlop = slop
}

func (s *State[K]) SetScrollAnchor(p ScrollAnchorPolicy) {
	s.anchorPolicy = p
}

func (s *State[K]) ScrollAnchor() ScrollAnchorPolicy {
	return s.anchorPolicy
}

// SetAutoScroll configures the edge band and the maximum per-tick speed.
func (s *State[K]) SetAutoScroll(band, maxSpeed float32) {
	s.scroll.band = band
	s.scroll.maxSpeed = maxSpeed
}

// SetOnChanged installs the trigger invoked whenever visual drag state
// changes and the grid must be laid out again.
func (s *State[K]) SetOnChanged(f func()) {
	s.onChanged = f
}

// PublishItemBounds records where key was laid out, in root coordinates.
func (s *State[K]) PublishItemBounds(key K, r Rect) {
	s.bounds.publish(key, r)
	if s.phase == PhaseActive && key == s.draggingKey {
		s.updateTranslation()
	}
}

// PublishGridBounds records the visible viewport of the grid.
func (s *State[K]) PublishGridBounds(r Rect) {
	s.bounds.grid = r
}

// RecordCellHeight stores the live cell height. It is ignored while a drag
// is in progress so that the layout shifting around the dragged item cannot
// change the step size.
func (s *State[K]) RecordCellHeight(h float32) {
	if s.phase != PhaseIdle {
		return
	}
	s.bounds.cellHeight = h
}

func (s *State[K]) Phase() Phase {
	return s.phase
}

// DraggingKey returns the key of the item being dragged.
func (s *State[K]) DraggingKey() (K, bool) {
	if s.phase != PhaseActive {
		var zero K
		return zero, false
	}
	return s.draggingKey, true
}

// DraggingIndex is the index of the dragged item in the current collection,
// or -1.
func (s *State[K]) DraggingIndex() int {
	return s.draggingIndex
}

func (s *State[K]) IsDragging(key K) bool {
	return s.phase == PhaseActive && s.draggingKey == key
}

// Translation is the offset to apply to the dragged item from its natural
// position so it stays under the pointer.
func (s *State[K]) Translation() fyne.Position {
	return s.translation
}

// TargetSlot is the last announced target slot, or NoSlot.
func (s *State[K]) TargetSlot() int {
	return s.target
}

// EndSlotHighlighted reports whether the virtual slot after the last of
// itemCount items is the current target.
func (s *State[K]) EndSlotHighlighted(itemCount int) bool {
	return s.phase == PhaseActive && s.target == itemCount
}

// AutoScrolling reports whether the auto-scroll task is running.
func (s *State[K]) AutoScrolling() bool {
	return s.scroll.running()
}

// Press registers a long press at p. It returns false, leaving the state
// idle, when no laid out item is under p.
func (s *State[K]) Press(p fyne.Position) bool {
	if s.phase != PhaseIdle {
		s.reset()
	}

	key, r, ok := s.bounds.hitTest(p, s.live)
	if !ok {
		return false
	}

	// A zero height here would make the row step ~1 unit and send the
	// target flying, so the hit item's own height is frozen for the drag.
	if r.Size.Height > 0 {
		s.frozenCellHeight = r.Size.Height
		if s.bounds.cellHeight <= 0 {
			s.bounds.cellHeight = r.Size.Height
		}
	}

	s.phase = PhasePending
	s.pendingKey = key
	s.pendingStart = p
	s.pendingGrab = p.Subtract(r.Pos)

	s.pointer = p
	s.translation = fyne.Position{}
	s.target = s.indexOf(key)
	s.changed()
	return true
}

// Drag moves the pointer to p, which must be in root coordinates. Positions
// are never accumulated from deltas: a reorder or scroll can change what a
// local point means between two events. It reports whether the event was
// consumed by the drag.
func (s *State[K]) Drag(p fyne.Position) bool {
	if s.phase == PhaseIdle {
		return false
	}

	prev := s.pointer
	s.pointer = p

	consumed := false
	if s.phase == PhasePending {
		d := p.Subtract(s.pendingStart)
		if math.Hypot(float64(d.X), float64(d.Y)) <= float64(s.touchSlop) {
			return false
		}
		s.activate()
		consumed = true
	} else {
		consumed = p != prev
	}

	s.step()
	s.changed()
	return consumed
}

// End finishes the drag where it is. The item already sits at its final
// index because every target change was committed as it happened.
func (s *State[K]) End() {
	s.reset()
}

// Cancel aborts the gesture. Moves already committed are not rolled back.
func (s *State[K]) Cancel() {
	s.reset()
}

func (s *State[K]) activate() {
	key := s.pendingKey

	s.phase = PhaseActive
	s.draggingKey = key
	s.draggingIndex = s.indexOf(key)
	s.grabOffset = s.pendingGrab

	if sc := s.scroller(); sc != nil {
		sc.StopScroll()
	}

	var zero K
	s.pendingKey = zero
	s.pendingStart = fyne.Position{}
	s.pendingGrab = fyne.Position{}

	s.updateTranslation()
}

// step runs one active update with the current pointer.
func (s *State[K]) step() {
	if s.phase != PhaseActive {
		return
	}

	// Never trust the stored index: the last onMove mutated the collection.
	index := s.indexOf(s.draggingKey)
	if index < 0 {
		return
	}
	s.draggingIndex = index

	s.updateTranslation()
	s.scroll.react(s.pointer, s.bounds.grid)
	s.reorder(index)
}

// retarget re-runs the active update after auto-scroll moved the content
// under a stationary pointer.
func (s *State[K]) retarget() {
	if s.phase != PhaseActive {
		return
	}
	s.step()
	s.changed()
}

func (s *State[K]) updateTranslation() {
	if s.phase != PhaseActive {
		return
	}
	r, ok := s.bounds.lookup(s.draggingKey)
	if !ok {
		return
	}
	s.translation = s.pointer.Subtract(s.grabOffset).Subtract(r.Pos)
}

func (s *State[K]) reset() {
	s.scroll.halt()

	var zero K
	s.phase = PhaseIdle
	s.draggingKey = zero
	s.draggingIndex = -1

	s.pendingKey = zero
	s.pendingStart = fyne.Position{}
	s.pendingGrab = fyne.Position{}

	s.translation = fyne.Position{}
	s.grabOffset = fyne.Position{}
	s.pointer = fyne.Position{}
	s.target = NoSlot

	s.frozenCellHeight = 0
	s.changed()
}

// cellSize is the effective cell size for slot mapping.
func (s *State[K]) cellSize() fyne.Size {
	h := s.bounds.cellHeight
	if s.phase != PhaseIdle && s.frozenCellHeight > 0 {
		h = s.frozenCellHeight
	}
	return fyne.NewSize(max(s.bounds.cellWidth, 1), max(h, 1))
}

func (s *State[K]) live(key K) bool {
	return s.indexOf(key) >= 0
}

func (s *State[K]) indexOf(key K) int {
	if s.host == nil {
		return -1
	}
	return s.host.IndexOf(key)
}

func (s *State[K]) scroller() Scroller {
	if s.host == nil {
		return nil
	}
	return s.host.Scroller()
}

func (s *State[K]) changed() {
	if s.onChanged != nil {
		s.onChanged()
	}
}
