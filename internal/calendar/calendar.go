// Package calendar holds the in-memory entry store the all-day strip
// synchronizes against: calendars, entries, recurrence expansion, and
// the change events fired on every mutation.
package calendar

import (
	"sort"
	"time"
)

// Calendar is a named collection of entries.
type Calendar struct {
	Name    string
	Color   string
	Visible bool
}

// NewCalendar returns a visible calendar.
func NewCalendar(name, color string) *Calendar {
	return &Calendar{Name: name, Color: color, Visible: true}
}

// EventType identifies what changed in a Store.
type EventType int

const (
	// EntryAdded fires after an entry joins a calendar.
	EntryAdded EventType = iota
	// EntryRemoved fires after an entry, or one occurrence of a
	// recurring entry, leaves the store.
	EntryRemoved
	// EntryFullDayChanged fires after an entry's full-day flag flips.
	EntryFullDayChanged
	// EntryIntervalChanged fires after an entry's start or end moves.
	EntryIntervalChanged
	// EntryRecurrenceChanged fires after an entry's recurrence rule
	// is replaced.
	EntryRecurrenceChanged
	// CalendarChanged fires on calendar-level changes such as
	// visibility flips or wholesale replacement; subscribers should
	// reload.
	CalendarChanged
)

func (t EventType) String() string {
	switch t {
	case EntryAdded:
		return "entryAdded"
	case EntryRemoved:
		return "entryRemoved"
	case EntryFullDayChanged:
		return "entryFullDayChanged"
	case EntryIntervalChanged:
		return "entryIntervalChanged"
	case EntryRecurrenceChanged:
		return "entryRecurrenceChanged"
	case CalendarChanged:
		return "calendarChanged"
	}
	return "unknown"
}

// ChangeEvent describes one store mutation.
type ChangeEvent struct {
	Type     EventType
	Entry    *Entry
	Calendar *Calendar
}

type subscription struct {
	id int
	fn func(ChangeEvent)
}

// Store owns calendars and entries and notifies subscribers of every
// change. It is not safe for concurrent use; all access belongs on the
// UI loop.
type Store struct {
	loc       *time.Location
	calendars []*Calendar
	entries   map[string]*Entry
	subs      []subscription
	nextSub   int
}

// NewStore returns an empty store whose dates resolve in loc. A nil
// loc means time.Local.
func NewStore(loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		loc:     loc,
		entries: make(map[string]*Entry),
	}
}

// Location returns the location store dates resolve in.
func (s *Store) Location() *time.Location { return s.loc }

// Subscribe registers fn for change events, fired synchronously in
// subscription order. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(ChangeEvent)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) fire(ev ChangeEvent) {
	for _, sub := range s.subs {
		sub.fn(ev)
	}
}

// AddCalendar adds c to the store.
func (s *Store) AddCalendar(c *Calendar) {
	s.calendars = append(s.calendars, c)
	s.fire(ChangeEvent{Type: CalendarChanged, Calendar: c})
}

// Calendars returns the store's calendars in insertion order.
func (s *Store) Calendars() []*Calendar { return s.calendars }

// SetCalendarVisible flips c's visibility.
func (s *Store) SetCalendarVisible(c *Calendar, visible bool) {
	if c.Visible == visible {
		return
	}
	c.Visible = visible
	s.fire(ChangeEvent{Type: CalendarChanged, Calendar: c})
}

// AddEntry attaches e to cal and adds it to the store.
func (s *Store) AddEntry(cal *Calendar, e *Entry) {
	e.Calendar = cal
	s.entries[e.ID] = e
	s.fire(ChangeEvent{Type: EntryAdded, Entry: e, Calendar: cal})
}

// RemoveEntry removes e. Removing an occurrence of a recurring entry
// excludes just that occurrence's date; the base entry and its other
// occurrences stay.
func (s *Store) RemoveEntry(e *Entry) {
	if src := e.RecurrenceSource; src != nil {
		src.ExcludedDates = append(src.ExcludedDates, e.StartDate(s.loc))
		s.fire(ChangeEvent{Type: EntryRemoved, Entry: e, Calendar: e.Calendar})
		return
	}
	if _, ok := s.entries[e.ID]; !ok {
		return
	}
	delete(s.entries, e.ID)
	s.fire(ChangeEvent{Type: EntryRemoved, Entry: e, Calendar: e.Calendar})
}

// SetEntryInterval moves e to the given start and end instants.
func (s *Store) SetEntryInterval(e *Entry, start, end time.Time) {
	if e.Start.Equal(start) && e.End.Equal(end) {
		return
	}
	e.Start, e.End = start, end
	s.fire(ChangeEvent{Type: EntryIntervalChanged, Entry: e, Calendar: e.Calendar})
}

// SetEntryFullDay flips e's full-day flag.
func (s *Store) SetEntryFullDay(e *Entry, fullDay bool) {
	if e.FullDay == fullDay {
		return
	}
	e.FullDay = fullDay
	s.fire(ChangeEvent{Type: EntryFullDayChanged, Entry: e, Calendar: e.Calendar})
}

// SetEntryRecurrence replaces e's recurrence rule.
func (s *Store) SetEntryRecurrence(e *Entry, rule string) {
	if e.Recurrence == rule {
		return
	}
	e.Recurrence = rule
	s.fire(ChangeEvent{Type: EntryRecurrenceChanged, Entry: e, Calendar: e.Calendar})
}

// Replace swaps the store's entire contents in one step and fires a
// single CalendarChanged. Entries must already reference one of cals.
func (s *Store) Replace(cals []*Calendar, entries []*Entry) {
	s.calendars = cals
	s.entries = make(map[string]*Entry, len(entries))
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	s.fire(ChangeEvent{Type: CalendarChanged})
}

// Entries returns all base entries ordered by start, then ID.
func (s *Store) Entries() []*Entry {
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sortEntries(out)
	return out
}

// FindEntries returns every entry overlapping a day in [from, to],
// listed under each day it covers. Recurring entries are expanded into
// per-occurrence copies; the per-day lists are ordered by start, then
// ID.
func (s *Store) FindEntries(from, to Date) map[Date][]*Entry {
	result := make(map[Date][]*Entry)
	if to.Before(from) {
		return result
	}
	for _, e := range s.Entries() {
		for _, occ := range s.expand(e, from, to) {
			first := MaxDate(occ.StartDate(s.loc), from)
			last := MinDate(occ.EndDate(s.loc), to)
			for d := first; !d.After(last); d = d.AddDays(1) {
				result[d] = append(result[d], occ)
			}
		}
	}
	for _, list := range result {
		sortEntries(list)
	}
	return result
}

func sortEntries(list []*Entry) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Start.Equal(list[j].Start) {
			return list[i].Start.Before(list[j].Start)
		}
		return list[i].ID < list[j].ID
	})
}
