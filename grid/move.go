package grid

// Move relocates items[from] so that it ends up at index to, shifting the
// items in between. to is read against the collection with the item already
// removed and is clamped to its length, so passing len(items) appends.
// Invalid from values and from == to leave items untouched.
//
// Move reorders in place and returns items, making it a ready-made body for
// the onMove callback of NewState.
func Move[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) || from == to {
		return items
	}
	if to < 0 {
		to = 0
	}
	if to > len(items)-1 {
		to = len(items) - 1
	}
	if from == to {
		return items
	}

	moved := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = moved
	return items
}
