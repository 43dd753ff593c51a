package grid

import "fyne.io/fyne/v2"

// bounds records where the render pass last placed each item and the grid
// viewport, all in root coordinates. Entries for keys that left the
// collection are kept; lookups that matter are always by a live key.
type bounds[K comparable] struct {
	items map[K]Rect
	grid  Rect

	cellWidth  float32
	cellHeight float32
}

func newBounds[K comparable]() *bounds[K] {
	return &bounds[K]{items: make(map[K]Rect)}
}

func (b *bounds[K]) publish(key K, r Rect) {
	b.items[key] = r
}

func (b *bounds[K]) lookup(key K) (Rect, bool) {
	r, ok := b.items[key]
	return r, ok
}

// hitTest returns the first live item whose bounds contain p. Cells are
// disjoint by construction so iteration order does not matter, but a stale
// entry can overlap a live one and is skipped.
func (b *bounds[K]) hitTest(p fyne.Position, live func(K) bool) (K, Rect, bool) {
	for k, r := range b.items {
		if !r.Contains(p) {
			continue
		}
		if live != nil && !live(k) {
			continue
		}
		return k, r, true
	}
	var zero K
	return zero, Rect{}, false
}
