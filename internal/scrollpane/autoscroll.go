package scrollpane

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Proximity is the distance from a viewport edge within which a
// drag-and-drop gesture engages autoscrolling.
const Proximity = 20.0

const (
	armDelay     = 300 * time.Millisecond
	tickEvery    = 15 * time.Millisecond
	maxMouseStep = 10.0
)

// Autoscroller nudges a pane's scroll position while a drag gesture
// lingers near a viewport edge. The tick loop runs on its own
// goroutine and owns no pane state: each tick hands a scroll mutation
// to dispatch, which must run it on the UI loop. At most one loop is
// live at a time; updating the offset while one runs does not restart
// the arm delay.
type Autoscroller struct {
	pane     *Pane
	dispatch func(func())

	mu     sync.Mutex
	offset float64
	cancel context.CancelFunc
}

// NewAutoscroller returns an autoscroller for pane. A nil dispatch
// runs scroll mutations directly on the tick goroutine; only tests
// should do that.
func NewAutoscroller(pane *Pane, dispatch func(func())) *Autoscroller {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Autoscroller{pane: pane, dispatch: dispatch}
}

// MouseDragged feeds a plain drag position through the soft scroll
// law: nothing inside the viewport, half the overshoot past an edge,
// at most maxMouseStep per tick.
func (a *Autoscroller) MouseDragged(y float64) {
	if a.pane.ViewportWidth() < 1 {
		a.Stop()
		return
	}
	var off float64
	switch h := a.pane.ViewportHeight(); {
	case y < 0:
		off = math.Max(y/2, -maxMouseStep)
	case y > h:
		off = math.Min((y-h)/2, maxMouseStep)
	}
	a.apply(off)
}

// DragOver feeds a drag-and-drop position through the hard scroll
// law: within Proximity of an edge the offset grows linearly toward
// the edge and keeps growing uncapped past it.
func (a *Autoscroller) DragOver(y float64) {
	if a.pane.ViewportWidth() < 1 {
		a.Stop()
		return
	}
	var off float64
	switch h := a.pane.ViewportHeight(); {
	case y < Proximity:
		off = y - Proximity
	case y > h-Proximity:
		off = y - (h - Proximity)
	}
	a.apply(off)
}

// apply installs the new offset: zero stops the loop, anything else
// starts one if none is running.
func (a *Autoscroller) apply(off float64) {
	if off == 0 {
		a.Stop()
		return
	}
	a.mu.Lock()
	a.offset = off
	running := a.cancel != nil
	if !running {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		go a.loop(ctx)
	}
	a.mu.Unlock()
	if !running {
		log.Debug("autoscroll engaged", "offset", off)
	}
}

func (a *Autoscroller) loop(ctx context.Context) {
	timer := time.NewTimer(armDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	ticker := time.NewTicker(tickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.mu.Lock()
			off := a.offset
			a.mu.Unlock()
			a.dispatch(func() { a.pane.ScrollBy(-off) })
		}
	}
}

// Stop halts the tick loop and clears the offset. Safe to call at any
// time, from any gesture-ending event.
func (a *Autoscroller) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.offset = 0
	a.mu.Unlock()
	if cancel != nil {
		cancel()
		log.Debug("autoscroll stopped")
	}
}

// Scrolling reports whether a tick loop is live.
func (a *Autoscroller) Scrolling() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}

// Offset returns the current signed per-tick scroll amount.
func (a *Autoscroller) Offset() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}
