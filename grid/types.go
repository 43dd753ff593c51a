package grid

import (
	"time"

	"fyne.io/fyne/v2"
)

// NoSlot is returned when no target slot can be computed, and is the
// target slot of a grid that is not being dragged.
const NoSlot = -1

const (
	DefaultColumns  = 3
	DefaultPadding  = float32(16)
	DefaultHSpacing = float32(12)
	DefaultVSpacing = float32(12)

	// LongPressDelay is how long a press must be held before it can start a drag.
	LongPressDelay = 400 * time.Millisecond
	// DefaultTouchSlop is the pointer travel needed to promote a pending press.
	DefaultTouchSlop = float32(8)

	DefaultEdgeBand       = float32(56)
	DefaultMaxScrollSpeed = float32(22)
	autoScrollTick        = 16 * time.Millisecond
	// below this a scroll request is treated as end of content
	minConsumedScroll = float32(0.5)

	endSlotMinHeight = float32(56)

	columnsKey      = "xreorder:columns"
	hapticsKey      = "xreorder:haptics"
	scrollAnchorKey = "xreorder:scrollAnchor"
)

// Phase is the drag lifecycle state of a State.
type Phase int

const (
	// PhaseIdle means no press is registered.
	PhaseIdle Phase = iota
	// PhasePending means a long press picked an item but the pointer has not
	// yet travelled past the touch slop.
	PhasePending
	// PhaseActive means an item is being dragged.
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseActive:
		return "active"
	default:
		return "idle"
	}
}

// ScrollAnchorPolicy selects how the scroll position is treated while a drag
// reorders the first visible item.
type ScrollAnchorPolicy int

const (
	// ScrollAnchorNone never corrects the scroll position during a drag.
	ScrollAnchorNone ScrollAnchorPolicy = iota
	// ScrollAnchorPinDragged restores the first visible row and offset after a
	// move that displaced the dragged item while it was the first visible item.
	ScrollAnchorPinDragged
)

// Padding is the content padding around the grid cells.
type Padding struct {
	Top, Bottom, Left, Right float32
}

// NewUniformPadding returns a Padding with the same inset on every side.
func NewUniformPadding(p float32) Padding {
	return Padding{Top: p, Bottom: p, Left: p, Right: p}
}

// Geometry is the owner supplied grid configuration.
type Geometry struct {
	Columns  int
	Padding  Padding
	HSpacing float32
	VSpacing float32
}

// Rect is an axis aligned rectangle in root coordinates.
type Rect struct {
	Pos  fyne.Position
	Size fyne.Size
}

// NewRect builds a Rect from a top-left position and a size.
func NewRect(pos fyne.Position, size fyne.Size) Rect {
	return Rect{Pos: pos, Size: size}
}

// Empty reports whether the rectangle has no area, which is how unknown
// (not yet laid out) bounds are represented.
func (r Rect) Empty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so that adjacent cells never both contain a point.
func (r Rect) Contains(p fyne.Position) bool {
	return p.X >= r.Pos.X && p.X < r.Pos.X+r.Size.Width &&
		p.Y >= r.Pos.Y && p.Y < r.Pos.Y+r.Size.Height
}

func (r Rect) Top() float32    { return r.Pos.Y }
func (r Rect) Bottom() float32 { return r.Pos.Y + r.Size.Height }

// Scroller is the scrollable collaborator that hosts the grid cells.
type Scroller interface {
	// FirstVisibleIndex is the index of the first item in the first visible row.
	FirstVisibleIndex() int
	// FirstVisibleOffset is how far the first visible row is scrolled past.
	FirstVisibleOffset() float32
	// ScrollBy scrolls by delta and returns the amount actually scrolled.
	ScrollBy(delta float32) float32
	CanScroll(forward bool) bool
	// StopScroll halts any in-flight momentum scroll.
	StopScroll()
	ScrollToItem(index int, offset float32)
}

// Host is the rendering side of a drag: it owns the item collection and the
// scroll container. Grid implements it for Fyne.
type Host[K comparable] interface {
	IndexOf(key K) int
	KeyAt(index int) (K, bool)
	ItemCount() int
	Geometry() Geometry
	Scroller() Scroller
}

// HapticKind names a feedback cue.
type HapticKind int

const (
	// HapticMove is emitted each time the announced target slot changes.
	HapticMove HapticKind = iota
)

// HapticSink receives feedback cues while dragging.
type HapticSink interface {
	Perform(kind HapticKind)
}

// HapticFunc adapts a function to a HapticSink.
type HapticFunc func(kind HapticKind)

func (f HapticFunc) Perform(kind HapticKind) {
	f(kind)
}
