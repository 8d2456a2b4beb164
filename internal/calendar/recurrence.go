package calendar

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/teambition/rrule-go"
)

// expand returns the concrete entries e contributes to [from, to]: the
// entry itself when it does not recur, otherwise one occurrence copy
// per recurrence date whose span overlaps the window.
func (s *Store) expand(e *Entry, from, to Date) []*Entry {
	if e.Recurrence == "" {
		if overlapsWindow(e, from, to, s.loc) {
			return []*Entry{e}
		}
		return nil
	}
	return s.occurrences(e, from, to)
}

// Occurrences expands a recurring entry over [from, to]. Non-recurring
// entries yield nothing.
func (s *Store) Occurrences(e *Entry, from, to Date) []*Entry {
	if e.Recurrence == "" {
		return nil
	}
	return s.occurrences(e, from, to)
}

func (s *Store) occurrences(e *Entry, from, to Date) []*Entry {
	r, err := rrule.StrToRRule(e.Recurrence)
	if err != nil {
		log.Debug("skipping entry with unparsable recurrence rule",
			"entry", e.ID, "rrule", e.Recurrence, "err", err)
		return nil
	}
	r.DTStart(e.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range e.ExcludedDates {
		set.ExDate(s.occurrenceStart(e, ex))
	}

	// Occurrences starting up to the entry's own span before the
	// window can still reach into it.
	spanDays := e.StartDate(s.loc).DaysUntil(e.EndDate(s.loc))
	if spanDays < 0 {
		spanDays = 0
	}
	lo := from.AddDays(-spanDays).Time(s.loc)
	hi := to.AddDays(1).Time(s.loc)

	var out []*Entry
	for _, t := range set.Between(lo, hi, true) {
		occ := s.occurrence(e, t)
		if overlapsWindow(occ, from, to, s.loc) {
			out = append(out, occ)
		}
	}
	return out
}

// occurrence builds the expanded copy of e starting at t. The copy's
// ID appends the occurrence date to the base ID.
func (s *Store) occurrence(e *Entry, t time.Time) *Entry {
	return &Entry{
		ID:               e.ID + "#" + DateOf(t.In(s.loc)).String(),
		Title:            e.Title,
		Calendar:         e.Calendar,
		Start:            t,
		End:              t.Add(e.Duration()),
		FullDay:          e.FullDay,
		RecurrenceSource: e,
	}
}

// occurrenceStart returns the instant an occurrence of e starts on d:
// the entry's own clock time in the entry's location.
func (s *Store) occurrenceStart(e *Entry, d Date) time.Time {
	st := e.Start
	return time.Date(d.Year, d.Month, d.Day,
		st.Hour(), st.Minute(), st.Second(), st.Nanosecond(), st.Location())
}

func overlapsWindow(e *Entry, from, to Date, loc *time.Location) bool {
	return !e.EndDate(loc).Before(from) && !e.StartDate(loc).After(to)
}
