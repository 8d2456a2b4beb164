package allday

import "alldayview/internal/calendar"

// Layout runs any pending recompute stages and positions every view
// inside the content box: entries sync first, then background columns,
// then bar geometry. It returns the placements used.
//
// Bars map linearly across numberOfDays equal-width columns. An
// entry's clipped dates are rewritten first, so a bar reaching past
// the window renders only its visible part; the clipped duration is
// derived directly from the clipped dates. Each bar is one row high,
// stacked by lane below the extra top padding.
func (r *Row) Layout(content Rect) []Placement {
	r.syncEntries()

	start, days := r.Window()
	if r.needsBackgrounds || len(r.columns) != days {
		r.needsBackgrounds = false
		r.rebuildColumns()
	}
	if content.W < 0 {
		content.W = 0
	}
	if content.H < 0 {
		content.H = 0
	}
	r.lastContent = content
	r.layoutColumns(content)

	end := start.AddDays(days - 1)
	views := r.allViews()
	for _, v := range views {
		v.ClippedStart = calendar.MaxDate(v.Entry.StartDate(r.loc), start)
		v.ClippedEnd = calendar.MinDate(v.Entry.EndDate(r.loc), end)
	}

	r.placements = Resolve(views, r.loc)
	r.maxLane = 0
	for _, p := range r.placements {
		if p.Lane > r.maxLane {
			r.maxLane = p.Lane
		}
	}

	m := r.metrics
	dayWidth := content.W / float64(days)
	for _, p := range r.placements {
		v := p.View
		x := content.X + float64(start.DaysUntil(v.ClippedStart))*dayWidth
		y := content.Y + float64(p.Lane)*(m.RowHeight+m.RowSpacing) + m.ExtraPadding.Top

		var w float64
		if days == 1 {
			// One-day windows skip the spacing and the cap; the bar
			// overshoots the content width by one unit.
			w = content.W + 1
		} else {
			durDays := v.ClippedStart.DaysUntil(v.ClippedEnd) + 1
			w = float64(durDays)*dayWidth - m.ColumnSpacing
			if remaining := content.W - (x - content.X); w > remaining {
				w = remaining
			}
		}
		if w < 0 {
			w = 0
		}
		v.Rect = Rect{X: x, Y: y, W: w, H: m.RowHeight}
	}

	r.needsLayout = false
	return r.placements
}

// MaxLane returns the highest lane index from the last layout pass.
func (r *Row) MaxLane() int { return r.maxLane }

// ViewAt returns the view whose laid-out bar contains (x, y), or nil.
// The dragged view wins when it covers the point.
func (r *Row) ViewAt(x, y float64) *EntryView {
	if r.dragged != nil && r.dragged.Rect.Contains(x, y) {
		return r.dragged
	}
	for _, p := range r.placements {
		if p.View.Rect.Contains(x, y) {
			return p.View
		}
	}
	return nil
}
