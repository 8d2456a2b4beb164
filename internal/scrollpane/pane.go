// Package scrollpane implements a vertical scroll container for
// content that reports its own preferred size: a translation offset
// with clamping, an externally renderable scrollbar model, and a timed
// autoscroll loop for drag gestures near the viewport edges.
package scrollpane

import "math"

// Content is anything the pane can scroll.
type Content interface {
	PreferredWidth() float64
	PreferredHeight() float64
}

// Pane scrolls its content vertically by translating it against the
// viewport. It is not safe for concurrent use; every method belongs on
// the UI loop.
type Pane struct {
	content   Content
	scrollbar *Scrollbar

	viewportW  float64
	viewportH  float64
	translateY float64

	rowHeight    float64
	scrollHeight float64
}

// New returns a pane over content with no scrollbar attached.
func New(content Content) *Pane {
	return &Pane{content: content, rowHeight: 1}
}

// SetViewport resizes the visible area and re-clamps the translation.
func (p *Pane) SetViewport(w, h float64) {
	p.viewportW = w
	p.viewportH = h
	p.clamp()
	p.syncScrollbar()
}

// ViewportWidth returns the visible width.
func (p *Pane) ViewportWidth() float64 { return p.viewportW }

// ViewportHeight returns the visible height.
func (p *Pane) ViewportHeight() float64 { return p.viewportH }

// SetRowHeight sets the unit scroll increment.
func (p *Pane) SetRowHeight(h float64) {
	p.rowHeight = h
	p.syncScrollbar()
}

// SetScrollHeight caps the pane's preferred height while a scrollbar
// is attached. Zero means uncapped.
func (p *Pane) SetScrollHeight(h float64) { p.scrollHeight = h }

// ScrollBy shifts the content translation by dy and clamps it.
func (p *Pane) ScrollBy(dy float64) {
	p.translateY += dy
	p.clamp()
	p.syncScrollbar()
}

// ScrollTo sets the content translation and clamps it.
func (p *Pane) ScrollTo(y float64) {
	p.translateY = y
	p.clamp()
	p.syncScrollbar()
}

// SetScrollValue positions the pane from a scrollbar value: value v
// shows content row v at the top.
func (p *Pane) SetScrollValue(v float64) { p.ScrollTo(-v) }

// TranslateY returns the content translation. It is never positive:
// zero means scrolled to the top.
func (p *Pane) TranslateY() float64 { return p.translateY }

// PreferredWidth passes the content's preferred width through.
func (p *Pane) PreferredWidth() float64 { return p.content.PreferredWidth() }

// PreferredHeight returns the content's preferred height, capped at
// the configured scroll height while a scrollbar is attached.
func (p *Pane) PreferredHeight() float64 {
	h := p.content.PreferredHeight()
	if p.scrollbar != nil && p.scrollHeight > 0 && h > p.scrollHeight {
		h = p.scrollHeight
	}
	return h
}

// AttachScrollbar binds sb to the pane's scroll state.
func (p *Pane) AttachScrollbar(sb *Scrollbar) {
	p.scrollbar = sb
	p.syncScrollbar()
}

// DetachScrollbar unbinds the scrollbar and resets the translation.
func (p *Pane) DetachScrollbar() {
	p.scrollbar = nil
	p.translateY = 0
}

// Scrollbar returns the attached scrollbar, if any.
func (p *Pane) Scrollbar() *Scrollbar { return p.scrollbar }

// Clip returns the slice of content lines visible through the
// viewport at the current translation.
func (p *Pane) Clip(lines []string) []string {
	from := int(math.Round(-p.translateY))
	if from < 0 {
		from = 0
	}
	if from > len(lines) {
		from = len(lines)
	}
	to := from + int(p.viewportH)
	if to > len(lines) {
		to = len(lines)
	}
	return lines[from:to]
}

// clamp keeps the translation inside [min(0, viewportH - contentH), 0].
func (p *Pane) clamp() {
	lo := p.viewportH - p.content.PreferredHeight()
	if lo > 0 {
		lo = 0
	}
	if p.translateY < lo {
		p.translateY = lo
	}
	if p.translateY > 0 {
		p.translateY = 0
	}
}

// syncScrollbar rewrites the scrollbar model from the pane's state.
func (p *Pane) syncScrollbar() {
	sb := p.scrollbar
	if sb == nil {
		return
	}
	contentH := p.content.PreferredHeight()
	max := contentH - p.viewportH
	if max < 0 {
		max = 0
	}
	sb.Max = max
	sb.VisibleAmount = 0
	if contentH > 0 {
		sb.VisibleAmount = max * (p.viewportH / contentH)
	}
	sb.UnitIncrement = p.rowHeight
	sb.BlockIncrement = p.viewportH / 2
	sb.Value = -p.translateY
}
