package scrollpane

import (
	"testing"
	"time"
)

// swallow drops tick callbacks so tests can inspect offsets without
// the loop mutating the pane.
func swallow(func()) {}

func TestMouseDragLaw(t *testing.T) {
	p, _ := newTestPane(100, 40)
	cases := []struct {
		name string
		y    float64
		want float64
	}{
		{"just above the top", -4, -2},
		{"far above the top", -30, -10},
		{"just below the bottom", 45, 2.5},
		{"far below the bottom", 100, 10},
	}
	for _, tc := range cases {
		a := NewAutoscroller(p, swallow)
		a.MouseDragged(tc.y)
		if got := a.Offset(); got != tc.want {
			t.Errorf("%s: offset %v, want %v", tc.name, got, tc.want)
		}
		if !a.Scrolling() {
			t.Errorf("%s: expected the loop running", tc.name)
		}
		a.Stop()
	}
}

func TestMouseDragInsideViewportIdles(t *testing.T) {
	p, _ := newTestPane(100, 40)
	a := NewAutoscroller(p, swallow)

	a.MouseDragged(20)

	if a.Scrolling() {
		t.Error("a drag inside the viewport must not scroll")
	}
	if a.Offset() != 0 {
		t.Errorf("offset = %v, want 0", a.Offset())
	}
}

func TestDragOverLaw(t *testing.T) {
	p, _ := newTestPane(100, 60)
	cases := []struct {
		name string
		y    float64
		want float64
	}{
		{"inside the top margin", 5, -15},
		{"at the top edge", 0, -20},
		{"above the viewport", -10, -30},
		{"inside the bottom margin", 58, 18},
		{"below the viewport", 70, 30},
	}
	for _, tc := range cases {
		a := NewAutoscroller(p, swallow)
		a.DragOver(tc.y)
		if got := a.Offset(); got != tc.want {
			t.Errorf("%s: offset %v, want %v", tc.name, got, tc.want)
		}
		a.Stop()
	}
}

func TestDragOverCenterIdles(t *testing.T) {
	p, _ := newTestPane(100, 60)
	a := NewAutoscroller(p, swallow)

	a.DragOver(30)

	if a.Scrolling() {
		t.Error("a drag clear of both margins must not scroll")
	}
}

func TestLeavingTheEdgeStops(t *testing.T) {
	p, _ := newTestPane(100, 40)
	a := NewAutoscroller(p, swallow)

	a.MouseDragged(-10)
	if !a.Scrolling() {
		t.Fatal("expected the loop running after an edge drag")
	}

	a.MouseDragged(20)
	if a.Scrolling() {
		t.Error("dragging back inside should stop the loop")
	}
}

func TestUnsizedViewportStops(t *testing.T) {
	content := &stubContent{w: 0, h: 100}
	p := New(content)
	a := NewAutoscroller(p, swallow)

	a.MouseDragged(-10)

	if a.Scrolling() {
		t.Error("an unsized pane must never autoscroll")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	p, _ := newTestPane(100, 40)
	a := NewAutoscroller(p, swallow)

	a.Stop()
	a.MouseDragged(-10)
	a.Stop()
	a.Stop()

	if a.Scrolling() {
		t.Error("stopped loop reported as running")
	}
}

func TestArmDelayBeforeFirstTick(t *testing.T) {
	p, _ := newTestPane(100, 40)
	ticks := make(chan func(), 64)
	a := NewAutoscroller(p, func(f func()) {
		select {
		case ticks <- f:
		default:
		}
	})
	defer a.Stop()

	a.MouseDragged(-10)

	// Nothing should arrive while the delay is arming.
	select {
	case <-ticks:
		t.Fatal("tick arrived before the arm delay elapsed")
	case <-time.After(150 * time.Millisecond):
	}

	// After the delay, ticks flow.
	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first tick")
	}
}

func TestTicksScrollThePane(t *testing.T) {
	p, _ := newTestPane(100, 40)
	ticks := make(chan func(), 64)
	a := NewAutoscroller(p, func(f func()) {
		select {
		case ticks <- f:
		default:
		}
	})
	defer a.Stop()

	// Below the bottom edge: positive offset, scrolling down.
	a.MouseDragged(50)

	deadline := time.After(2 * time.Second)
	for p.TranslateY() >= 0 {
		select {
		case f := <-ticks:
			f()
		case <-deadline:
			t.Fatal("timed out waiting for the pane to move")
		}
	}
	if p.TranslateY() > -5 || p.TranslateY() < -60 {
		t.Errorf("translation %v out of the scrollable range", p.TranslateY())
	}
}

func TestReenterUpdatesOffsetWithoutRearming(t *testing.T) {
	p, _ := newTestPane(100, 40)
	ticks := make(chan func(), 64)
	a := NewAutoscroller(p, func(f func()) {
		select {
		case ticks <- f:
		default:
		}
	})
	defer a.Stop()

	a.MouseDragged(-30)

	// Wait out the arm delay.
	select {
	case <-ticks:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first tick")
	}

	// A new edge position updates the offset in place.
	a.MouseDragged(-4)
	if got := a.Offset(); got != -2 {
		t.Fatalf("offset after re-enter = %v, want -2", got)
	}

	// The loop keeps ticking at cadence; a fresh arm delay would
	// leave this window silent.
	select {
	case <-ticks:
	case <-time.After(200 * time.Millisecond):
		t.Error("re-entering the edge zone must not restart the arm delay")
	}
}
