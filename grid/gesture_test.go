package grid

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
)

type gestureLog struct {
	presses, drags, releases, cancels int
	last                              fyne.Position
}

func newLoggedOverlay(accept bool) (*gestureOverlay, *gestureLog) {
	l := &gestureLog{}
	o := newGestureOverlay(widget.NewLabel("cell"))
	o.onPress = func(p fyne.Position) bool {
		l.presses++
		l.last = p
		return accept
	}
	o.onDrag = func(p fyne.Position) {
		l.drags++
		l.last = p
	}
	o.onRelease = func() { l.releases++ }
	o.onCancel = func() { l.cancels++ }
	return o, l
}

func mouseAt(p fyne.Position, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{AbsolutePosition: p}, Button: b}
}

// dragTo is a desktop drag: both positions are filled. The overlay is not
// in a window so local and absolute coincide.
func dragTo(p fyne.Position) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: p, AbsolutePosition: p}}
}

// touchMove is a mobile drag while the finger is down: only the position
// local to the overlay is known.
func touchMove(local fyne.Position) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: local}}
}

func TestGestureOverlay_LongPressThenDrag(t *testing.T) {
	test.NewApp()
	o, l := newLoggedOverlay(true)

	o.MouseDown(mouseAt(fyne.NewPos(10, 10), desktop.MouseButtonPrimary))
	if !o.armed {
		t.Fatal("expected primary press to arm the long press")
	}
	o.longPressed()
	if l.presses != 1 || l.last != fyne.NewPos(10, 10) {
		t.Fatalf("expected one press at 10,10, got %d at %v", l.presses, l.last)
	}

	o.Dragged(dragTo(fyne.NewPos(40, 90)))
	if l.drags != 1 || l.last != fyne.NewPos(40, 90) {
		t.Fatalf("expected drag to 40,90, got %d at %v", l.drags, l.last)
	}
	if l.releases != 0 {
		t.Fatal("expected a mouse drag to continue until the button is released")
	}

	o.DragEnd()
	o.MouseUp(mouseAt(fyne.NewPos(40, 90), desktop.MouseButtonPrimary))
	if l.releases != 1 {
		t.Fatalf("expected exactly one release, got %d", l.releases)
	}
}

func TestGestureOverlay_EarlyMoveDisarms(t *testing.T) {
	test.NewApp()
	o, l := newLoggedOverlay(true)

	o.MouseDown(mouseAt(fyne.NewPos(10, 10), desktop.MouseButtonPrimary))
	o.Dragged(dragTo(fyne.NewPos(10, 10+DefaultTouchSlop*3)))
	if o.armed {
		t.Fatal("expected moving before the hold to disarm")
	}
	if l.drags != 0 {
		t.Fatalf("expected no drag to be forwarded, got %d", l.drags)
	}

	o.DragEnd()
	if l.presses != 0 || l.releases != 0 {
		t.Fatalf("expected no press or release, got %d/%d", l.presses, l.releases)
	}
}

func TestGestureOverlay_SecondaryButtonIgnored(t *testing.T) {
	test.NewApp()
	o, _ := newLoggedOverlay(true)

	o.MouseDown(mouseAt(fyne.NewPos(10, 10), desktop.MouseButtonSecondary))
	if o.armed {
		t.Fatal("expected secondary button not to arm")
	}
}

func TestGestureOverlay_RejectedPress(t *testing.T) {
	test.NewApp()
	o, l := newLoggedOverlay(false)

	o.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(5, 5)}})
	o.longPressed()
	o.Dragged(dragTo(fyne.NewPos(50, 50)))
	o.TouchUp(&mobile.TouchEvent{})

	if l.drags != 0 || l.releases != 0 {
		t.Fatalf("expected a missed press to swallow the gesture, got %d drags %d releases", l.drags, l.releases)
	}
}

func TestGestureOverlay_TouchCancel(t *testing.T) {
	test.NewApp()
	o, l := newLoggedOverlay(true)

	o.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(5, 5)}})
	o.longPressed()
	o.TouchCancel(&mobile.TouchEvent{})
	o.TouchUp(&mobile.TouchEvent{})

	if l.cancels != 1 || l.releases != 0 {
		t.Fatalf("expected one cancel and no release, got %d/%d", l.cancels, l.releases)
	}
}

func TestGestureOverlay_TouchDragUsesLocalPosition(t *testing.T) {
	test.NewApp()
	o, l := newLoggedOverlay(true)
	w := test.NewTempWindow(t, container.NewBorder(widget.NewLabel("header"), nil, nil, nil, o))
	w.Resize(fyne.NewSize(200, 300))

	base := absolutePosition(o)
	if base.Y <= 0 {
		t.Fatalf("expected the overlay below the header, got %v", base)
	}

	o.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(5, 5), AbsolutePosition: base.Add(fyne.NewPos(5, 5))}})
	o.longPressed()
	o.Dragged(touchMove(fyne.NewPos(40, 90)))

	if want := base.Add(fyne.NewPos(40, 90)); l.drags != 1 || l.last != want {
		t.Fatalf("expected drag to %v, got %d at %v", want, l.drags, l.last)
	}
}

func TestGestureOverlay_TouchLiftEndsDrag(t *testing.T) {
	test.NewApp()
	o, l := newLoggedOverlay(true)

	o.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(5, 5)}})
	o.longPressed()
	o.Dragged(touchMove(fyne.NewPos(20, 20)))
	if l.releases != 0 {
		t.Fatal("expected the drag to continue while the finger is down")
	}

	// The lift carries the absolute position.
	o.Dragged(dragTo(fyne.NewPos(30, 30)))
	if l.drags != 2 || l.last != fyne.NewPos(30, 30) {
		t.Fatalf("expected the lift position to be delivered, got %d at %v", l.drags, l.last)
	}
	if l.releases != 1 {
		t.Fatalf("expected release on lift, got %d", l.releases)
	}

	// Momentum replay after the lift must not move the drag.
	o.Dragged(touchMove(fyne.NewPos(60, 60)))
	o.Dragged(touchMove(fyne.NewPos(70, 70)))
	o.DragEnd()
	if l.drags != 2 || l.releases != 1 {
		t.Fatalf("expected no drags or releases after the lift, got %d/%d", l.drags, l.releases)
	}
}
