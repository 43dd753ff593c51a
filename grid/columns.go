package grid

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// wheelNotch is the scroll delta of one mouse wheel notch in Fyne units.
const wheelNotch = float32(40)

// columnModifierHeld reports whether Ctrl, or Cmd on macOS, is down.
func columnModifierHeld() bool {
	a := fyne.CurrentApp()
	if a == nil {
		return false
	}
	d, ok := a.Driver().(desktop.Driver)
	return ok && d.CurrentKeyModifiers()&(fyne.KeyModifierControl|fyne.KeyModifierShortcutDefault) != 0
}

// columnStepOverlay turns modifier+wheel into column steps. It is only
// visible, and so only hit by wheel events, while the modifier is held;
// otherwise the scroll container underneath gets them. Wheel up means
// fewer, larger columns.
type columnStepOverlay struct {
	widget.BaseWidget
	onStep  func(steps int)
	pending float32
}

func newColumnStepOverlay(onStep func(steps int)) *columnStepOverlay {
	c := &columnStepOverlay{onStep: onStep}
	c.ExtendBaseWidget(c)
	return c
}

func (c *columnStepOverlay) Visible() bool {
	return c.BaseWidget.Visible() && columnModifierHeld()
}

func (c *columnStepOverlay) Scrolled(e *fyne.ScrollEvent) {
	dy := e.Scrolled.DY
	if c.onStep == nil || math.IsNaN(float64(dy)) || math.IsInf(float64(dy), 0) {
		return
	}

	// Touchpads report many small deltas; only whole notches count.
	c.pending += dy
	steps := int(c.pending / wheelNotch)
	if steps == 0 {
		return
	}
	c.pending -= float32(steps) * wheelNotch
	c.onStep(steps)
}

func (c *columnStepOverlay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

var _ fyne.Scrollable = (*columnStepOverlay)(nil)
