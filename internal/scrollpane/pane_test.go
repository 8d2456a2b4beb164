package scrollpane

import (
	"fmt"
	"testing"
)

// stubContent reports fixed preferred sizes.
type stubContent struct {
	w, h float64
}

func (c *stubContent) PreferredWidth() float64  { return c.w }
func (c *stubContent) PreferredHeight() float64 { return c.h }

func newTestPane(contentH, viewportH float64) (*Pane, *stubContent) {
	content := &stubContent{w: 80, h: contentH}
	p := New(content)
	p.SetViewport(80, viewportH)
	return p, content
}

func TestScrollClampsToContent(t *testing.T) {
	p, _ := newTestPane(30, 10)

	p.ScrollBy(-50)
	if p.TranslateY() != -20 {
		t.Errorf("translation should clamp at viewport minus content, got %v", p.TranslateY())
	}

	p.ScrollBy(100)
	if p.TranslateY() != 0 {
		t.Errorf("translation should clamp at zero, got %v", p.TranslateY())
	}

	p.ScrollTo(-5)
	if p.TranslateY() != -5 {
		t.Errorf("in-range translation should stick, got %v", p.TranslateY())
	}
}

func TestShortContentNeverScrolls(t *testing.T) {
	p, _ := newTestPane(5, 10)

	p.ScrollBy(-50)
	if p.TranslateY() != 0 {
		t.Errorf("content shorter than the viewport must stay pinned, got %v", p.TranslateY())
	}
}

func TestScrollbarBinding(t *testing.T) {
	p, _ := newTestPane(30, 10)
	p.SetRowHeight(2)
	sb := &Scrollbar{}
	p.AttachScrollbar(sb)

	if sb.Max != 20 {
		t.Errorf("max = %v, want 20", sb.Max)
	}
	if want := 20 * (10.0 / 30.0); sb.VisibleAmount != want {
		t.Errorf("visible amount = %v, want %v", sb.VisibleAmount, want)
	}
	if sb.UnitIncrement != 2 {
		t.Errorf("unit increment = %v, want the row height", sb.UnitIncrement)
	}
	if sb.BlockIncrement != 5 {
		t.Errorf("block increment = %v, want half the viewport", sb.BlockIncrement)
	}

	p.ScrollBy(-7)
	if sb.Value != 7 {
		t.Errorf("value should track the translation, got %v", sb.Value)
	}
}

func TestSetScrollValuePositionsPane(t *testing.T) {
	p, _ := newTestPane(30, 10)

	p.SetScrollValue(7)
	if p.TranslateY() != -7 {
		t.Errorf("value 7 should translate to -7, got %v", p.TranslateY())
	}
}

func TestPreferredHeightCapsWhileAttached(t *testing.T) {
	p, _ := newTestPane(30, 10)
	p.SetScrollHeight(12)

	if got := p.PreferredHeight(); got != 30 {
		t.Errorf("unattached pane should pass content height through, got %v", got)
	}

	p.AttachScrollbar(&Scrollbar{})
	if got := p.PreferredHeight(); got != 12 {
		t.Errorf("attached pane should cap at the scroll height, got %v", got)
	}

	p.ScrollBy(-5)
	p.DetachScrollbar()
	if got := p.PreferredHeight(); got != 30 {
		t.Errorf("detached pane should be unconstrained again, got %v", got)
	}
	if p.TranslateY() != 0 {
		t.Errorf("detaching should reset the translation, got %v", p.TranslateY())
	}
}

func TestPreferredHeightShortContent(t *testing.T) {
	p, _ := newTestPane(8, 10)
	p.SetScrollHeight(12)
	p.AttachScrollbar(&Scrollbar{})

	if got := p.PreferredHeight(); got != 8 {
		t.Errorf("the cap only ever shrinks, got %v", got)
	}
}

func TestClipWindowsContent(t *testing.T) {
	p, _ := newTestPane(30, 10)
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}

	p.ScrollTo(-12)
	got := p.Clip(lines)
	if len(got) != 10 || got[0] != "line 12" || got[9] != "line 21" {
		t.Errorf("clip at -12 returned %d lines starting %q", len(got), got[0])
	}

	p.ScrollBy(-100)
	got = p.Clip(lines)
	if len(got) != 10 || got[9] != "line 29" {
		t.Errorf("clip at the bottom should end on the last line, got %q", got[len(got)-1])
	}
}

func TestClipShortContent(t *testing.T) {
	p, _ := newTestPane(3, 10)
	lines := []string{"a", "b", "c"}

	got := p.Clip(lines)
	if len(got) != 3 {
		t.Errorf("short content clips to itself, got %d lines", len(got))
	}
}

func TestViewportResizeReclamps(t *testing.T) {
	p, _ := newTestPane(30, 10)
	p.ScrollTo(-20)

	// A taller viewport leaves less room to scroll.
	p.SetViewport(80, 25)
	if p.TranslateY() != -5 {
		t.Errorf("translation should re-clamp on resize, got %v", p.TranslateY())
	}
}

func TestThumbGeometry(t *testing.T) {
	// Content 40 in a viewport of 10: max 30, visible amount 7.5.
	p, _ := newTestPane(40, 10)
	sb := &Scrollbar{}
	p.AttachScrollbar(sb)

	if from, to := sb.Thumb(10); from != 0 || to != 2 {
		t.Errorf("thumb at top = [%d, %d), want [0, 2)", from, to)
	}

	p.ScrollTo(-30)
	if from, to := sb.Thumb(10); from != 8 || to != 10 {
		t.Errorf("thumb at bottom = [%d, %d), want [8, 10)", from, to)
	}
}

func TestThumbFillsTrackWithoutRange(t *testing.T) {
	p, _ := newTestPane(5, 10)
	sb := &Scrollbar{}
	p.AttachScrollbar(sb)

	if from, to := sb.Thumb(10); from != 0 || to != 10 {
		t.Errorf("rangeless thumb = [%d, %d), want the full track", from, to)
	}
}
