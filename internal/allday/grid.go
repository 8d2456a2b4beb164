package allday

import "alldayview/internal/calendar"

// DayColumn is one background cell of the strip.
type DayColumn struct {
	Date    calendar.Date
	Today   bool
	Weekend bool

	// PercentWidth is the column's share of the content width.
	PercentWidth float64
	Rect         Rect

	// Indicator mirrors the column's bounds and flags for an overlay
	// layer, so the highlight can extend into an adjoining region
	// beyond the strip's own height.
	Indicator Rect
}

// Columns returns the background columns from the last layout pass,
// one per visible day.
func (r *Row) Columns() []DayColumn { return r.columns }

// rebuildColumns recreates the column set for the current window and
// highlight configuration.
func (r *Row) rebuildColumns() {
	start, days := r.Window()
	cols := make([]DayColumn, days)
	for i := range cols {
		d := start.AddDays(i)
		cols[i] = DayColumn{
			Date:         d,
			Today:        r.showToday && d == r.today,
			Weekend:      r.weekendDays[d.Weekday()],
			PercentWidth: 100 / float64(days),
		}
	}
	r.columns = cols
}

// layoutColumns sizes each column and its indicator to the content box.
func (r *Row) layoutColumns(content Rect) {
	days := len(r.columns)
	if days == 0 {
		return
	}
	dayWidth := content.W / float64(days)
	for i := range r.columns {
		bounds := Rect{
			X: content.X + float64(i)*dayWidth,
			Y: content.Y,
			W: dayWidth,
			H: content.H,
		}
		r.columns[i].Rect = bounds
		r.columns[i].Indicator = bounds
	}
}
