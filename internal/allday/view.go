package allday

import "alldayview/internal/calendar"

// EntryView is the visual proxy for one entry in the strip. The row
// rewrites ClippedStart, ClippedEnd, and Rect on every layout pass, so
// a bar only ever renders the part of its entry inside the window.
type EntryView struct {
	Entry        *calendar.Entry
	ClippedStart calendar.Date
	ClippedEnd   calendar.Date
	Rect         Rect

	// Dragged marks the transient copy that follows the pointer during
	// a drag. It never belongs to the store-driven lifecycle.
	Dragged bool
}

// NewEntryView returns a view for e.
func NewEntryView(e *calendar.Entry) *EntryView {
	return &EntryView{Entry: e}
}

// ViewFactory produces the view for an entry. Returning nil skips the
// entry without error.
type ViewFactory func(*calendar.Entry) *EntryView
