package grid

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// EndSlot is the default drop-at-end placeholder shown after the last item.
type EndSlot struct {
	widget.BaseWidget

	highlighted bool
	bg          *canvas.Rectangle
	label       *widget.Label
}

// NewEndSlot creates an end slot placeholder.
func NewEndSlot() *EndSlot {
	e := &EndSlot{
		bg:    canvas.NewRectangle(color.Transparent),
		label: widget.NewLabel(""),
	}
	e.bg.CornerRadius = theme.InputRadiusSize() * 2
	e.label.Alignment = fyne.TextAlignCenter
	e.label.Wrapping = fyne.TextWrapWord
	e.apply()
	e.ExtendBaseWidget(e)
	return e
}

// SetHighlighted switches between the idle and "release here" look.
func (e *EndSlot) SetHighlighted(highlighted bool) {
	if e.highlighted == highlighted {
		return
	}
	e.highlighted = highlighted
	e.apply()
	e.Refresh()
}

func (e *EndSlot) Highlighted() bool {
	return e.highlighted
}

func (e *EndSlot) apply() {
	if e.highlighted {
		e.bg.FillColor = withAlpha(theme.Color(theme.ColorNamePrimary), 46)
		e.label.Importance = widget.HighImportance
		e.label.SetText(lang.L("Release to drop at end"))
		return
	}
	e.bg.FillColor = withAlpha(theme.Color(theme.ColorNameInputBackground), 153)
	e.label.Importance = widget.MediumImportance
	e.label.SetText(lang.L("Drag here to drop at end"))
}

func (e *EndSlot) CreateRenderer() fyne.WidgetRenderer {
	return &endSlotRenderer{e: e}
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

type endSlotRenderer struct {
	e *EndSlot
}

func (r *endSlotRenderer) Layout(size fyne.Size) {
	r.e.bg.Resize(size)
	r.e.bg.Move(fyne.NewPos(0, 0))

	pad := theme.Padding() * 2
	r.e.label.Resize(fyne.NewSize(size.Width-pad*2, size.Height-pad*2))
	r.e.label.Move(fyne.NewPos(pad, pad))
}

func (r *endSlotRenderer) MinSize() fyne.Size {
	pad := theme.Padding() * 4
	return r.e.label.MinSize().Add(fyne.NewSize(pad, pad)).Max(fyne.NewSize(0, endSlotMinHeight))
}

func (r *endSlotRenderer) Refresh() {
	r.e.bg.Refresh()
	r.e.label.Refresh()
}

func (r *endSlotRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.e.bg, r.e.label}
}

func (r *endSlotRenderer) Destroy() {}
