package allday

import (
	"testing"
	"time"

	"alldayview/internal/calendar"
)

// march returns a day in March 2026. March 2nd is a Monday.
func march(day int) calendar.Date {
	return calendar.NewDate(2026, time.March, day)
}

// testStore returns a UTC store with one visible calendar.
func testStore(t *testing.T) (*calendar.Store, *calendar.Calendar) {
	t.Helper()
	s := calendar.NewStore(time.UTC)
	cal := calendar.NewCalendar("work", "4")
	s.AddCalendar(cal)
	return s, cal
}

// testRow returns a row attached to a fresh store, windowed on the
// week of Monday March 2nd.
func testRow(t *testing.T) (*Row, *calendar.Store, *calendar.Calendar) {
	t.Helper()
	s, cal := testStore(t)
	r := New(nil, nil, time.UTC)
	r.Attach(s)
	r.SetDate(march(2))
	r.SetNumberOfDays(7)
	return r, s, cal
}

// spanning builds a full-day entry covering the given March days with
// a fixed ID, so sort tie-breaks are predictable.
func spanning(id, title string, startDay, endDay int) *calendar.Entry {
	e := calendar.NewEntry(title, march(startDay), march(endDay), time.UTC)
	e.ID = id
	return e
}

// layout runs a standard-size layout pass.
func layout(r *Row) {
	r.Layout(Rect{W: 70, H: 10})
}

func TestWindowDefaults(t *testing.T) {
	r := New(nil, nil, time.UTC)
	r.SetDate(march(4))

	start, days := r.Window()
	if start != march(4) {
		t.Errorf("expected window start March 4, got %v", start)
	}
	if days != 7 {
		t.Errorf("expected 7 days, got %d", days)
	}
}

func TestWindowAdjustsToWeekStart(t *testing.T) {
	r := New(nil, nil, time.UTC)
	r.SetDate(march(4)) // a Wednesday
	r.SetAdjustToWeekStart(true)

	start, _ := r.Window()
	if start != march(2) {
		t.Errorf("expected window start on Monday March 2, got %v", start)
	}

	r.SetWeekStart(time.Sunday)
	start, _ = r.Window()
	if start != march(1) {
		t.Errorf("expected window start on Sunday March 1, got %v", start)
	}
}

func TestNumberOfDaysClampsToOne(t *testing.T) {
	r := New(nil, nil, time.UTC)
	r.SetNumberOfDays(0)
	if got := r.NumberOfDays(); got != 1 {
		t.Errorf("expected 1 day, got %d", got)
	}
	r.SetNumberOfDays(-3)
	if got := r.NumberOfDays(); got != 1 {
		t.Errorf("expected 1 day, got %d", got)
	}
}

func TestPreferredHeightFormula(t *testing.T) {
	r, s, cal := testRow(t)
	r.SetRowMetrics(RowMetrics{
		RowHeight:     2,
		RowSpacing:    1,
		ColumnSpacing: 1,
		ExtraPadding:  Insets{Top: 1, Bottom: 1},
	})
	r.SetInsets(Insets{Top: 1, Bottom: 2})

	// Three mutually overlapping entries force three lanes.
	s.AddEntry(cal, spanning("a", "A", 2, 4))
	s.AddEntry(cal, spanning("b", "B", 3, 5))
	s.AddEntry(cal, spanning("c", "C", 2, 9))

	// 3 lanes of height 2, 2 gaps of 1, insets 3, extra padding 2.
	want := 3*2.0 + 2*1.0 + 3.0 + 2.0
	if got := r.PreferredHeight(); got != want {
		t.Errorf("PreferredHeight = %v, want %v", got, want)
	}
	if r.MinHeight() != want || r.MaxHeight() != want {
		t.Error("min and max height should equal the preferred height")
	}
}

func TestPreferredHeightEmptyRowReservesOneLane(t *testing.T) {
	r, _, _ := testRow(t)
	r.SetRowMetrics(RowMetrics{RowHeight: 2, RowSpacing: 1})

	if got := r.PreferredHeight(); got != 2 {
		t.Errorf("empty row should be one lane tall, got %v", got)
	}
}

func TestPreferredHeightCountsDraggedView(t *testing.T) {
	r, s, cal := testRow(t)
	r.SetRowMetrics(RowMetrics{RowHeight: 1})
	s.AddEntry(cal, spanning("a", "A", 2, 4))
	layout(r)

	if got := r.PreferredHeight(); got != 1 {
		t.Fatalf("expected height 1, got %v", got)
	}
	r.SetDragged(spanning("drag", "A (copy)", 3, 5))
	if got := r.PreferredHeight(); got != 2 {
		t.Errorf("dragged view should occupy its own lane, got height %v", got)
	}
}

func TestDetachStopsUpdates(t *testing.T) {
	r, s, cal := testRow(t)
	layout(r)
	r.Detach()

	s.AddEntry(cal, spanning("a", "A", 2, 4))
	layout(r)
	if len(r.Views()) != 0 {
		t.Errorf("detached row should not pick up store changes, got %d views", len(r.Views()))
	}
}
