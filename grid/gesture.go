package grid

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// gestureOverlay wraps the grid content and turns press, hold and drag
// input into the press / drag / release / cancel lifecycle of a State.
// Positions handed on are always absolute.
//
// Drag positions are rebuilt from the overlay's own position plus the
// event's local one: the mobile driver only fills AbsolutePosition on the
// event that lifts the finger, then replays momentum drags until DragEnd.
//
// It does not implement Tappable, so taps still reach the cells.
type gestureOverlay struct {
	widget.BaseWidget
	content fyne.CanvasObject

	onPress   func(fyne.Position) bool
	onDrag    func(fyne.Position)
	onRelease func()
	onCancel  func()

	downAt  fyne.Position
	armed   bool // down, waiting for the long press
	pressed bool // long press accepted by onPress
	touch   bool // current gesture started with a touch
	timer   *time.Timer
	gen     int
}

func newGestureOverlay(content fyne.CanvasObject) *gestureOverlay {
	o := &gestureOverlay{content: content}
	o.ExtendBaseWidget(o)
	return o
}

func (o *gestureOverlay) CreateRenderer() fyne.WidgetRenderer {
	return &gestureOverlayRenderer{o: o}
}

// arm starts the long press timer for a press at p.
func (o *gestureOverlay) arm(p fyne.Position) {
	o.disarm()
	o.armed = true
	o.downAt = p

	gen := o.gen
	o.timer = time.AfterFunc(LongPressDelay, func() {
		fyne.Do(func() {
			if o.gen != gen || !o.armed {
				return
			}
			o.longPressed()
		})
	})
}

func (o *gestureOverlay) longPressed() {
	o.armed = false
	if o.onPress != nil {
		o.pressed = o.onPress(o.downAt)
	}
}

// disarm forgets a pending long press without touching an accepted one.
func (o *gestureOverlay) disarm() {
	o.gen++
	o.armed = false
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *gestureOverlay) release() {
	o.disarm()
	if !o.pressed {
		return
	}
	o.pressed = false
	if o.onRelease != nil {
		o.onRelease()
	}
}

func (o *gestureOverlay) cancel() {
	o.disarm()
	if !o.pressed {
		return
	}
	o.pressed = false
	if o.onCancel != nil {
		o.onCancel()
	}
}

func (o *gestureOverlay) moved(p fyne.Position) {
	if o.pressed {
		if o.onDrag != nil {
			o.onDrag(p)
		}
		return
	}
	if !o.armed {
		return
	}
	// Moving before the hold completes is a plain drag, not a long press.
	d := p.Subtract(o.downAt)
	if math.Hypot(float64(d.X), float64(d.Y)) > float64(DefaultTouchSlop) {
		o.disarm()
	}
}

func (o *gestureOverlay) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	o.touch = false
	o.arm(e.AbsolutePosition)
}

// MouseUp can arrive before DragEnd on some platforms; release is idempotent.
func (o *gestureOverlay) MouseUp(*desktop.MouseEvent) {
	o.release()
}

func (o *gestureOverlay) TouchDown(e *mobile.TouchEvent) {
	o.touch = true
	o.arm(e.AbsolutePosition)
}

func (o *gestureOverlay) TouchUp(*mobile.TouchEvent) {
	o.release()
}

func (o *gestureOverlay) TouchCancel(*mobile.TouchEvent) {
	o.cancel()
}

func (o *gestureOverlay) Dragged(e *fyne.DragEvent) {
	o.moved(absolutePosition(o).Add(e.Position))

	// The finger is up; what follows is momentum replay.
	if o.touch && e.AbsolutePosition != (fyne.Position{}) {
		o.release()
	}
}

func (o *gestureOverlay) DragEnd() {
	o.release()
}

var (
	_ fyne.Draggable    = (*gestureOverlay)(nil)
	_ desktop.Mouseable = (*gestureOverlay)(nil)
	_ mobile.Touchable  = (*gestureOverlay)(nil)
)

type gestureOverlayRenderer struct {
	o *gestureOverlay
}

func (r *gestureOverlayRenderer) Layout(size fyne.Size) {
	r.o.content.Resize(size)
	r.o.content.Move(fyne.NewPos(0, 0))
}

func (r *gestureOverlayRenderer) MinSize() fyne.Size {
	return r.o.content.MinSize()
}

func (r *gestureOverlayRenderer) Refresh() {
	r.o.content.Refresh()
}

func (r *gestureOverlayRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.o.content}
}

func (r *gestureOverlayRenderer) Destroy() {
	r.o.disarm()
}
