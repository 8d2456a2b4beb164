// Package allday implements the all-day strip of a calendar view: the
// horizontal band above an hourly grid where full-day and multi-day
// entries render as bars. The Row keeps its entry views in sync with a
// store, assigns overlapping entries to lanes, and computes per-bar
// geometry for whatever content box it is laid out in.
package allday

import (
	"time"

	"alldayview/internal/calendar"
)

// RowMetrics are the fixed geometry parameters of the strip.
type RowMetrics struct {
	RowHeight     float64
	RowSpacing    float64
	ColumnSpacing float64
	ExtraPadding  Insets
}

// EntrySource supplies the entries overlapping a date range, keyed by
// the days each entry covers. Recurring entries arrive pre-expanded,
// one copy per occurrence.
type EntrySource interface {
	FindEntries(from, to calendar.Date) map[calendar.Date][]*calendar.Entry
}

// Row is the all-day strip. It is not safe for concurrent use; every
// method belongs on the UI loop.
type Row struct {
	source  EntrySource
	factory ViewFactory
	visible func(*calendar.Calendar) bool
	loc     *time.Location

	date         calendar.Date
	numberOfDays int
	adjustToWeek bool
	weekStart    time.Weekday
	weekendDays  map[time.Weekday]bool
	showToday    bool
	today        calendar.Date
	metrics      RowMetrics
	insets       Insets

	views    []*EntryView
	byID     map[string]*EntryView
	bySource map[string]map[string]bool
	dragged  *EntryView

	placements []Placement
	columns    []DayColumn
	maxLane    int

	lastContent Rect

	needsEntries     bool
	reloadReason     string
	needsBackgrounds bool
	needsLayout      bool

	unsubscribe func()
}

// New returns a row reading entries from source, resolving dates in
// loc. A nil factory falls back to NewEntryView; a nil loc means
// time.Local. The default window shows seven days starting today, with
// Monday weeks and Saturday/Sunday weekends.
func New(source EntrySource, factory ViewFactory, loc *time.Location) *Row {
	if factory == nil {
		factory = NewEntryView
	}
	if loc == nil {
		loc = time.Local
	}
	today := calendar.DateOf(time.Now().In(loc))
	return &Row{
		source:  source,
		factory: factory,
		visible: func(c *calendar.Calendar) bool { return c == nil || c.Visible },
		loc:     loc,

		date:         today,
		numberOfDays: 7,
		weekStart:    time.Monday,
		weekendDays:  map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
		showToday:    true,
		today:        today,
		metrics: RowMetrics{
			RowHeight:     1,
			ColumnSpacing: 1,
		},

		byID:     make(map[string]*EntryView),
		bySource: make(map[string]map[string]bool),

		needsEntries:     true,
		reloadReason:     "initial load",
		needsBackgrounds: true,
		needsLayout:      true,
	}
}

// Attach points the row at store and subscribes it to change events,
// replacing any previous attachment.
func (r *Row) Attach(store *calendar.Store) {
	r.Detach()
	r.source = store
	r.loc = store.Location()
	r.unsubscribe = store.Subscribe(r.onStoreChange)
	r.markEntriesDirty("attached to store")
}

// Detach drops the store subscription. The current views stay until
// the next reload.
func (r *Row) Detach() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

func (r *Row) onStoreChange(ev calendar.ChangeEvent) {
	switch ev.Type {
	case calendar.EntryAdded:
		r.entryAdded(ev.Entry)
	case calendar.EntryRemoved:
		r.entryRemoved(ev.Entry)
	case calendar.EntryFullDayChanged:
		r.entryFullDayChanged(ev.Entry)
	case calendar.EntryIntervalChanged:
		r.entryIntervalChanged(ev.Entry)
	case calendar.EntryRecurrenceChanged:
		r.entryRecurrenceChanged(ev.Entry)
	case calendar.CalendarChanged:
		r.markEntriesDirty("calendar changed")
	}
}

// SetDate moves the window's base date.
func (r *Row) SetDate(d calendar.Date) {
	if r.date == d {
		return
	}
	r.date = d
	r.markEntriesDirty("date changed")
	r.markBackgroundsDirty()
}

// Date returns the window's base date.
func (r *Row) Date() calendar.Date { return r.date }

// SetNumberOfDays resizes the window. Values below one clamp to one.
func (r *Row) SetNumberOfDays(n int) {
	if n < 1 {
		n = 1
	}
	if r.numberOfDays == n {
		return
	}
	r.numberOfDays = n
	r.markEntriesDirty("number of days changed")
	r.markBackgroundsDirty()
}

// NumberOfDays returns the configured day count.
func (r *Row) NumberOfDays() int { return r.numberOfDays }

// SetAdjustToWeekStart controls whether the window rolls back to the
// configured first day of the week.
func (r *Row) SetAdjustToWeekStart(adjust bool) {
	if r.adjustToWeek == adjust {
		return
	}
	r.adjustToWeek = adjust
	r.markEntriesDirty("week start adjustment changed")
	r.markBackgroundsDirty()
}

// SetWeekStart sets the first day of the week.
func (r *Row) SetWeekStart(day time.Weekday) {
	if r.weekStart == day {
		return
	}
	r.weekStart = day
	r.markEntriesDirty("week start changed")
	r.markBackgroundsDirty()
}

// SetWeekendDays replaces the weekend-day set.
func (r *Row) SetWeekendDays(days ...time.Weekday) {
	r.weekendDays = make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		r.weekendDays[d] = true
	}
	r.markBackgroundsDirty()
}

// SetShowToday controls the today highlight.
func (r *Row) SetShowToday(show bool) {
	if r.showToday == show {
		return
	}
	r.showToday = show
	r.markBackgroundsDirty()
}

// SetToday overrides the date the today highlight compares against.
func (r *Row) SetToday(d calendar.Date) {
	if r.today == d {
		return
	}
	r.today = d
	r.markBackgroundsDirty()
}

// SetRowMetrics replaces the strip's geometry parameters.
func (r *Row) SetRowMetrics(m RowMetrics) {
	if r.metrics == m {
		return
	}
	r.metrics = m
	r.markLayoutDirty()
}

// Metrics returns the strip's geometry parameters.
func (r *Row) Metrics() RowMetrics { return r.metrics }

// SetInsets replaces the row's outer insets.
func (r *Row) SetInsets(in Insets) {
	if r.insets == in {
		return
	}
	r.insets = in
	r.markLayoutDirty()
}

// SetCalendarVisible replaces the calendar visibility predicate. A nil
// fn admits every calendar.
func (r *Row) SetCalendarVisible(fn func(*calendar.Calendar) bool) {
	if fn == nil {
		fn = func(c *calendar.Calendar) bool { return c == nil || c.Visible }
	}
	r.visible = fn
	r.markEntriesDirty("visibility predicate changed")
}

// Window returns the visible date range: its first day and the number
// of days shown.
func (r *Row) Window() (start calendar.Date, days int) {
	start = r.date
	if r.adjustToWeek {
		start = startOfWeek(start, r.weekStart)
	}
	days = r.numberOfDays
	if days < 1 {
		days = 1
	}
	return start, days
}

func startOfWeek(d calendar.Date, first time.Weekday) calendar.Date {
	for d.Weekday() != first {
		d = d.AddDays(-1)
	}
	return d
}

// Views returns the live entry views in traversal order, excluding the
// dragged pseudo-view.
func (r *Row) Views() []*EntryView { return r.views }

// Placements returns the lane assignments from the last layout pass.
func (r *Row) Placements() []Placement { return r.placements }

// NeedsLayout reports whether a layout pass is pending.
func (r *Row) NeedsLayout() bool {
	return r.needsLayout || r.needsEntries || r.needsBackgrounds
}

func (r *Row) markEntriesDirty(reason string) {
	r.needsEntries = true
	r.reloadReason = reason
	r.needsLayout = true
}

func (r *Row) markBackgroundsDirty() {
	r.needsBackgrounds = true
	r.needsLayout = true
}

func (r *Row) markLayoutDirty() {
	r.needsLayout = true
}

// PreferredHeight returns the exact height the strip needs for its
// current entries: full lanes plus spacing, insets, and extra padding.
// An empty strip still reserves one lane. Min, preferred, and max are
// all this value.
func (r *Row) PreferredHeight() float64 {
	r.syncEntries()
	lanes := r.laneCount()
	m := r.metrics
	return float64(lanes)*m.RowHeight + float64(lanes-1)*m.RowSpacing +
		r.insets.Vertical() + m.ExtraPadding.Vertical()
}

// MinHeight equals PreferredHeight; the strip is not independently
// resizable.
func (r *Row) MinHeight() float64 { return r.PreferredHeight() }

// MaxHeight equals PreferredHeight.
func (r *Row) MaxHeight() float64 { return r.PreferredHeight() }

// PreferredWidth reports the width of the last layout pass; the strip
// stretches to whatever width it is given.
func (r *Row) PreferredWidth() float64 { return r.lastContent.W }

func (r *Row) laneCount() int {
	lanes := 0
	for _, p := range Resolve(r.allViews(), r.loc) {
		if p.Lane+1 > lanes {
			lanes = p.Lane + 1
		}
	}
	if lanes < 1 {
		lanes = 1
	}
	return lanes
}

func (r *Row) allViews() []*EntryView {
	if r.dragged == nil {
		return r.views
	}
	all := make([]*EntryView, 0, len(r.views)+1)
	all = append(all, r.views...)
	return append(all, r.dragged)
}
