package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a single calendar entry. Start and End are instants; for
// full-day entries both are midnights, with End marking the exclusive
// end of the last covered day.
type Entry struct {
	ID       string
	Title    string
	Calendar *Calendar
	Start    time.Time
	End      time.Time
	FullDay  bool

	// Recurrence holds the entry's RRULE text. Empty means the entry
	// does not recur.
	Recurrence    string
	ExcludedDates []Date

	// RecurrenceSource links an expanded occurrence back to the entry
	// it was expanded from. Nil on ordinary entries.
	RecurrenceSource *Entry
}

// NewEntry returns a full-day entry covering the days from start
// through end inclusive, resolved in loc.
func NewEntry(title string, start, end Date, loc *time.Location) *Entry {
	if end.Before(start) {
		end = start
	}
	return &Entry{
		ID:      uuid.NewString(),
		Title:   title,
		Start:   start.Time(loc),
		End:     end.AddDays(1).Time(loc),
		FullDay: true,
	}
}

// NewTimedEntry returns an entry with explicit start and end instants
// and no full-day flag.
func NewTimedEntry(title string, start, end time.Time) *Entry {
	return &Entry{
		ID:    uuid.NewString(),
		Title: title,
		Start: start,
		End:   end,
	}
}

// Recurring reports whether the entry carries a recurrence rule or is
// an occurrence of one.
func (e *Entry) Recurring() bool {
	return e.Recurrence != "" || e.RecurrenceSource != nil
}

// IsOccurrence reports whether the entry is an expanded occurrence of
// a recurring entry.
func (e *Entry) IsOccurrence() bool { return e.RecurrenceSource != nil }

// SourceID returns the entry's own ID, or the ID of the entry it was
// expanded from when it is an occurrence.
func (e *Entry) SourceID() string {
	if e.RecurrenceSource != nil {
		return e.RecurrenceSource.ID
	}
	return e.ID
}

// StartDate returns the first day the entry covers, in loc.
func (e *Entry) StartDate(loc *time.Location) Date {
	return DateOf(e.Start.In(loc))
}

// EndDate returns the last day the entry covers, in loc. An entry
// ending exactly at midnight covers through the end of the previous
// day.
func (e *Entry) EndDate(loc *time.Location) Date {
	t := e.End.In(loc)
	d := DateOf(t)
	if isMidnight(t) && e.End.After(e.Start) {
		d = d.AddDays(-1)
	}
	return d
}

// Duration returns End minus Start.
func (e *Entry) Duration() time.Duration { return e.End.Sub(e.Start) }

// Excluded reports whether d is one of the entry's excluded recurrence
// dates.
func (e *Entry) Excluded(d Date) bool {
	for _, ex := range e.ExcludedDates {
		if ex == d {
			return true
		}
	}
	return false
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
