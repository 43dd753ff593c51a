package grid

import (
	"time"

	"fyne.io/fyne/v2"
)

// EdgeVelocity returns the per-tick scroll delta for a pointer that is
// distTop from the top and distBottom from the bottom of the viewport.
// It is zero outside the band, negative near the top, positive near the
// bottom, and eases in quadratically towards maxSpeed at the edge itself.
func EdgeVelocity(distTop, distBottom, band, maxSpeed float32) float32 {
	if band <= 0 || maxSpeed <= 0 {
		return 0
	}
	distTop = max(distTop, 0)
	distBottom = max(distBottom, 0)

	ease := func(d float32) float32 {
		t := 1 - d/band
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		return t * t
	}

	switch {
	case distTop < band:
		return -maxSpeed * ease(distTop)
	case distBottom < band:
		return maxSpeed * ease(distBottom)
	default:
		return 0
	}
}

// autoScroller drives the scroll collaborator while the pointer rests near a
// viewport edge. At most one ticker runs; a running ticker picks up the
// latest velocity on its next tick instead of being restarted.
type autoScroller struct {
	band     float32
	maxSpeed float32

	velocity float32
	ticker   *time.Ticker
	stop     chan struct{}
	gen      int

	// scroller and alive are read at the top of every tick.
	scroller func() Scroller
	alive    func() bool
	onScroll func()
}

func newAutoScroller() *autoScroller {
	return &autoScroller{
		band:     DefaultEdgeBand,
		maxSpeed: DefaultMaxScrollSpeed,
	}
}

func (a *autoScroller) running() bool {
	return a.ticker != nil
}

// react updates the velocity for the pointer position and starts or stops
// the ticker accordingly.
func (a *autoScroller) react(pointer fyne.Position, viewport Rect) {
	if viewport.Empty() {
		return
	}
	a.velocity = EdgeVelocity(pointer.Y-viewport.Top(), viewport.Bottom()-pointer.Y, a.band, a.maxSpeed)
	if a.velocity == 0 {
		a.halt()
		return
	}
	a.start()
}

func (a *autoScroller) start() {
	if a.ticker != nil {
		return
	}
	a.gen++
	gen := a.gen
	a.ticker = time.NewTicker(autoScrollTick)
	a.stop = make(chan struct{})

	stop := a.stop
	ticker := a.ticker
	go func() {
		for {
			select {
			case <-ticker.C:
				fyne.Do(func() {
					if a.gen != gen {
						return
					}
					a.tick()
				})
			case <-stop:
				return
			}
		}
	}()
}

// halt stops the ticker synchronously. Ticks already queued on the UI
// goroutine see a newer generation and do nothing.
func (a *autoScroller) halt() {
	a.velocity = 0
	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	a.ticker = nil
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	a.gen++
}

// tick performs one scroll step. It returns false when the task ended.
func (a *autoScroller) tick() bool {
	if a.alive != nil && !a.alive() {
		a.halt()
		return false
	}
	v := a.velocity
	if v == 0 || a.scroller == nil {
		a.halt()
		return false
	}
	s := a.scroller()
	if s == nil || !s.CanScroll(v > 0) {
		a.halt()
		return false
	}

	consumed := s.ScrollBy(v)
	if consumed > -minConsumedScroll && consumed < minConsumedScroll {
		a.halt()
		return false
	}

	if a.onScroll != nil {
		a.onScroll()
	}
	return true
}
