package grid

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2"
)

// The test grid is 340 wide with 10 padding and 10 spacing, so three 100x100
// cells per row, one every 110 units.
var testGeometry = Geometry{
	Columns:  3,
	Padding:  NewUniformPadding(10),
	HSpacing: 10,
	VSpacing: 10,
}

var (
	testCell     = fyne.NewSize(100, 100)
	testViewport = NewRect(fyne.NewPos(0, 0), fyne.NewSize(340, 400))
)

type anchorCall struct {
	index  int
	offset float32
}

type mockScroller struct {
	first     int
	offset    float32
	canScroll bool
	// consume is what ScrollBy reports; negative means the full delta.
	consume float32

	stops    int
	scrolled []float32
	anchors  []anchorCall
}

func (m *mockScroller) FirstVisibleIndex() int      { return m.first }
func (m *mockScroller) FirstVisibleOffset() float32 { return m.offset }
func (m *mockScroller) CanScroll(bool) bool         { return m.canScroll }
func (m *mockScroller) StopScroll()                 { m.stops++ }

func (m *mockScroller) ScrollBy(delta float32) float32 {
	m.scrolled = append(m.scrolled, delta)
	if m.consume < 0 {
		return delta
	}
	return m.consume
}

func (m *mockScroller) ScrollToItem(index int, offset float32) {
	m.anchors = append(m.anchors, anchorCall{index: index, offset: offset})
}

type mockHost struct {
	items    []string
	geo      Geometry
	scroller *mockScroller
}

func (h *mockHost) IndexOf(key string) int {
	for i, k := range h.items {
		if k == key {
			return i
		}
	}
	return -1
}

func (h *mockHost) KeyAt(index int) (string, bool) {
	if index < 0 || index >= len(h.items) {
		return "", false
	}
	return h.items[index], true
}

func (h *mockHost) ItemCount() int     { return len(h.items) }
func (h *mockHost) Geometry() Geometry { return h.geo }

func (h *mockHost) Scroller() Scroller {
	if h.scroller == nil {
		return nil
	}
	return h.scroller
}

type moveCall struct {
	from, to int
}

type testRig struct {
	state  *State[string]
	host   *mockHost
	moves  []moveCall
	pulses int
}

// newTestRig builds a state over n items named "0".."n-1", laid out on the
// test geometry with nothing scrolled.
func newTestRig(n int, haptics bool) *testRig {
	r := &testRig{
		host: &mockHost{geo: testGeometry, scroller: &mockScroller{canScroll: true, consume: -1}},
	}
	for i := 0; i < n; i++ {
		r.host.items = append(r.host.items, fmt.Sprint(i))
	}
	r.state = NewState[string](func(from, to int) {
		r.moves = append(r.moves, moveCall{from: from, to: to})
		r.host.items = Move(r.host.items, from, to)
	}, haptics)
	r.state.Bind(r.host)
	r.state.SetHapticSink(HapticFunc(func(HapticKind) { r.pulses++ }))
	r.layout()
	return r
}

// layout plays the render pass: publish the viewport and every item slot.
func (r *testRig) layout() {
	r.state.PublishGridBounds(testViewport)
	r.state.RecordCellHeight(testCell.Height)
	for i, k := range r.host.items {
		r.state.PublishItemBounds(k, NewRect(slotOrigin(i, testGeometry, testCell), testCell))
	}
}

// center is the middle of slot i of the unscrolled test grid.
func center(i int) fyne.Position {
	return slotOrigin(i, testGeometry, testCell).Add(fyne.NewPos(testCell.Width/2, testCell.Height/2))
}

// pickUp presses on slot i and drags just past the slop to activate.
func (r *testRig) pickUp(t *testing.T, i int) fyne.Position {
	t.Helper()
	p := center(i)
	if !r.state.Press(p) {
		t.Fatalf("expected press on slot %d to hit an item", i)
	}
	p = p.Add(fyne.NewPos(DefaultTouchSlop+1, 0))
	r.state.Drag(p)
	return p
}
