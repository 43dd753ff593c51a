package grid

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Highlighter is implemented by end slot objects that react to being the
// current drop target.
type Highlighter interface {
	SetHighlighted(highlighted bool)
}

// Grid is a vertically scrolling grid whose items can be rearranged by
// long-pressing one and dragging it to another slot.
//
// Cell objects are cached by key and built again only when an item starts
// or stops being dragged, or when Refresh is called.
type Grid[T any, K comparable] struct {
	widget.BaseWidget

	Columns  int
	Padding  Padding
	HSpacing float32
	VSpacing float32

	// EndSlot is shown in a full-width row after the last item and accepts
	// drops at the end of the collection. Set to nil to hide it.
	EndSlot fyne.CanvasObject

	// OnColumnsChanged is called after the column count is stepped with
	// Ctrl (or Cmd) and the scroll wheel.
	OnColumnsChanged func(columns int)

	items  func() []T
	key    func(T) K
	render func(item T, dragging bool) fyne.CanvasObject
	state  *State[K]

	scroll   *container.Scroll
	overlay  *gestureOverlay
	content  *fyne.Container
	stepper  *columnStepOverlay
	scroller *scrollHost[T, K]

	cells    map[K]*cell
	order    []K
	cellSize fyne.Size
}

type cell struct {
	obj      fyne.CanvasObject
	dragging bool
	natural  fyne.Position
}

// NewGrid creates a grid showing items(), identified by key and drawn by
// render. The state's move callback must reorder what items() returns.
func NewGrid[T any, K comparable](items func() []T, key func(T) K, state *State[K], render func(item T, dragging bool) fyne.CanvasObject) *Grid[T, K] {
	g := &Grid[T, K]{
		Columns:  DefaultColumns,
		Padding:  NewUniformPadding(DefaultPadding),
		HSpacing: DefaultHSpacing,
		VSpacing: DefaultVSpacing,
		EndSlot:  NewEndSlot(),
		items:    items,
		key:      key,
		render:   render,
		state:    state,
		cells:    make(map[K]*cell),
	}
	g.scroller = &scrollHost[T, K]{g: g}
	state.Bind(g)
	state.SetOnChanged(g.update)
	g.ExtendBaseWidget(g)
	return g
}

// State returns the drag state driving this grid.
func (g *Grid[T, K]) State() *State[K] {
	return g.state
}

// SetColumns changes the column count. It is ignored while a press or drag
// is in progress.
func (g *Grid[T, K]) SetColumns(columns int) {
	if columns <= 0 {
		panic("grid: columns must be greater than zero")
	}
	if g.state.Phase() != PhaseIdle || g.Columns == columns {
		return
	}
	g.Columns = columns
	g.Refresh()
}

func (g *Grid[T, K]) stepColumns(steps int) {
	next := g.Columns - steps
	if next < 1 {
		next = 1
	}
	if next == g.Columns || g.state.Phase() != PhaseIdle {
		return
	}
	g.SetColumns(next)
	if g.OnColumnsChanged != nil {
		g.OnColumnsChanged(g.Columns)
	}
}

func (g *Grid[T, K]) CreateRenderer() fyne.WidgetRenderer {
	g.checkColumns()

	g.content = container.New(&slotLayout[T, K]{g: g})
	g.overlay = newGestureOverlay(g.content)
	g.overlay.onPress = g.state.Press
	g.overlay.onDrag = func(p fyne.Position) { g.state.Drag(p) }
	g.overlay.onRelease = g.state.End
	g.overlay.onCancel = g.state.Cancel

	g.scroll = container.NewVScroll(g.overlay)
	g.scroll.OnScrolled = func(fyne.Position) {
		g.publishBounds()
	}

	g.stepper = newColumnStepOverlay(g.stepColumns)

	g.sync(false)
	return &gridRenderer[T, K]{g: g, stack: container.NewStack(g.scroll, g.stepper)}
}

// Host implementation.

func (g *Grid[T, K]) IndexOf(key K) int {
	for i, it := range g.items() {
		if g.key(it) == key {
			return i
		}
	}
	return -1
}

func (g *Grid[T, K]) KeyAt(index int) (K, bool) {
	items := g.items()
	if index < 0 || index >= len(items) {
		var zero K
		return zero, false
	}
	return g.key(items[index]), true
}

func (g *Grid[T, K]) ItemCount() int {
	return len(g.items())
}

func (g *Grid[T, K]) Geometry() Geometry {
	return Geometry{
		Columns:  g.Columns,
		Padding:  g.Padding,
		HSpacing: g.HSpacing,
		VSpacing: g.VSpacing,
	}
}

func (g *Grid[T, K]) Scroller() Scroller {
	if g.scroll == nil {
		return nil
	}
	return g.scroller
}

func (g *Grid[T, K]) checkColumns() {
	if g.Columns <= 0 {
		panic("grid: columns must be greater than zero")
	}
}

// sync matches the cached cells to the current items and rebuilds the
// content object list. It reports whether any object was added, replaced
// or removed.
func (g *Grid[T, K]) sync(full bool) bool {
	items := g.items()
	order := make([]K, 0, len(items))
	seen := make(map[K]struct{}, len(items))
	changed := len(items) != len(g.order)

	for _, it := range items {
		k := g.key(it)
		order = append(order, k)
		seen[k] = struct{}{}

		dragging := g.state.IsDragging(k)
		c, ok := g.cells[k]
		if !ok {
			c = &cell{}
			g.cells[k] = c
		}
		if !ok || full || c.dragging != dragging {
			c.obj = g.render(it, dragging)
			c.dragging = dragging
			changed = true
		}
	}
	for k := range g.cells {
		if _, ok := seen[k]; !ok {
			delete(g.cells, k)
		}
	}
	g.order = order

	if g.content != nil {
		g.content.Objects = g.objects()
	}
	return changed
}

// objects lists the cells in slot order, then the end slot, then the
// dragged cell so it draws above everything else.
func (g *Grid[T, K]) objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(g.order)+1)
	var dragged fyne.CanvasObject
	for _, k := range g.order {
		c := g.cells[k]
		if c.dragging {
			dragged = c.obj
			continue
		}
		objs = append(objs, c.obj)
	}
	if g.EndSlot != nil {
		objs = append(objs, g.EndSlot)
	}
	if dragged != nil {
		objs = append(objs, dragged)
	}
	return objs
}

// update is the state's change trigger.
func (g *Grid[T, K]) update() {
	if g.content == nil {
		return
	}
	if g.sync(false) {
		g.content.Refresh()
		g.scroll.Refresh()
		return
	}
	g.layoutCells(g.content.Size())
}

// layoutCells is the layout pass: it places every cell in its slot, the
// dragged cell shifted by the drag translation, and publishes bounds.
func (g *Grid[T, K]) layoutCells(size fyne.Size) {
	g.checkColumns()
	geo := g.Geometry()

	minCell := g.minCellSize()
	g.cellSize = fyne.NewSize(CellWidth(size.Width, geo), minCell.Height)
	g.state.RecordCellHeight(g.cellSize.Height)

	for i, k := range g.order {
		c := g.cells[k]
		c.natural = slotOrigin(i, geo, g.cellSize)
		c.obj.Resize(g.cellSize)
	}
	g.publishBounds()

	for _, k := range g.order {
		c := g.cells[k]
		pos := c.natural
		if g.state.IsDragging(k) {
			pos = pos.Add(g.state.Translation())
		}
		c.obj.Move(pos)
	}

	if g.EndSlot != nil {
		rows := (len(g.order) + geo.Columns - 1) / geo.Columns
		y := geo.Padding.Top + float32(rows)*(g.cellSize.Height+geo.VSpacing)
		g.EndSlot.Move(fyne.NewPos(geo.Padding.Left, y))
		g.EndSlot.Resize(fyne.NewSize(size.Width-geo.Padding.Left-geo.Padding.Right, g.endSlotHeight()))
		if h, ok := g.EndSlot.(Highlighter); ok {
			h.SetHighlighted(g.state.EndSlotHighlighted(len(g.order)))
		}
	}
}

// publishBounds reports the viewport and the natural bounds of every cell
// in root coordinates. It runs after each layout and each scroll.
func (g *Grid[T, K]) publishBounds() {
	if g.scroll == nil {
		return
	}
	g.state.PublishGridBounds(NewRect(absolutePosition(g.scroll), g.scroll.Size()))

	origin := absolutePosition(g.content)
	for _, k := range g.order {
		c := g.cells[k]
		g.state.PublishItemBounds(k, NewRect(origin.Add(c.natural), g.cellSize))
	}
}

func (g *Grid[T, K]) minCellSize() fyne.Size {
	var s fyne.Size
	for _, k := range g.order {
		s = s.Max(g.cells[k].obj.MinSize())
	}
	return s.Max(fyne.NewSize(1, 1))
}

func (g *Grid[T, K]) endSlotHeight() float32 {
	if g.EndSlot == nil {
		return 0
	}
	return max(g.EndSlot.MinSize().Height, endSlotMinHeight)
}

func (g *Grid[T, K]) contentMinSize() fyne.Size {
	geo := g.Geometry()
	cols := geo.Columns
	if cols < 1 {
		cols = 1
	}
	cellMin := g.minCellSize()
	rows := (len(g.order) + cols - 1) / cols

	w := geo.Padding.Left + geo.Padding.Right + float32(cols)*cellMin.Width + float32(cols-1)*geo.HSpacing
	h := geo.Padding.Top + geo.Padding.Bottom
	if rows > 0 {
		h += float32(rows)*cellMin.Height + float32(rows-1)*geo.VSpacing
	}
	if g.EndSlot != nil {
		if rows > 0 {
			h += geo.VSpacing
		}
		h += g.endSlotHeight()
	}
	return fyne.NewSize(w, h)
}

func absolutePosition(o fyne.CanvasObject) fyne.Position {
	a := fyne.CurrentApp()
	if a == nil || o == nil {
		return fyne.Position{}
	}
	return a.Driver().AbsolutePositionForObject(o)
}

type slotLayout[T any, K comparable] struct {
	g *Grid[T, K]
}

func (l *slotLayout[T, K]) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	l.g.layoutCells(size)
}

func (l *slotLayout[T, K]) MinSize(_ []fyne.CanvasObject) fyne.Size {
	return l.g.contentMinSize()
}

type gridRenderer[T any, K comparable] struct {
	g     *Grid[T, K]
	stack *fyne.Container
}

func (r *gridRenderer[T, K]) Layout(size fyne.Size) {
	r.stack.Resize(size)
	r.g.publishBounds()
}

func (r *gridRenderer[T, K]) MinSize() fyne.Size {
	return r.g.scroll.MinSize()
}

func (r *gridRenderer[T, K]) Refresh() {
	r.g.checkColumns()
	r.g.sync(true)
	r.g.content.Refresh()
	r.g.scroll.Refresh()
}

func (r *gridRenderer[T, K]) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.stack}
}

// Destroy cancels any drag so no auto-scroll outlives the grid.
func (r *gridRenderer[T, K]) Destroy() {
	r.g.overlay.disarm()
	r.g.state.Cancel()
}
