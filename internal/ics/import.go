package ics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/charmbracelet/log"

	"alldayview/internal/calendar"
)

// Palette holds the colors assigned to imported calendars.
var Palette = []string{"4", "2", "5", "6", "3", "1"}

// ImportFile parses the iCalendar file at path into one calendar and
// its entries, resolving dates in loc. Events that cannot be parsed
// are skipped with a warning rather than failing the whole import.
func ImportFile(path string, loc *time.Location) (*calendar.Calendar, []*calendar.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	parsed, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cal := calendar.NewCalendar(calendarName(parsed, path), Palette[0])
	var entries []*calendar.Entry
	for _, ev := range parsed.Events() {
		e, err := parseEvent(ev, loc)
		if err != nil {
			log.Warn("skipping event", "path", path, "err", err)
			continue
		}
		e.Calendar = cal
		entries = append(entries, e)
	}
	return cal, entries, nil
}

// Sync imports path and replaces the store's contents with the result.
func Sync(s *calendar.Store, path string) error {
	cal, entries, err := ImportFile(path, s.Location())
	if err != nil {
		return err
	}
	s.Replace([]*calendar.Calendar{cal}, entries)
	log.Info("calendar imported", "path", path, "calendar", cal.Name, "entries", len(entries))
	return nil
}

func parseEvent(ev *ical.VEvent, loc *time.Location) (*calendar.Entry, error) {
	uid := ev.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return nil, fmt.Errorf("event without UID")
	}
	e := &calendar.Entry{ID: uid.Value}
	if p := ev.GetProperty(ical.ComponentPropertySummary); p != nil {
		e.Title = p.Value
	}

	dtStart := ev.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return nil, fmt.Errorf("event %s without DTSTART", e.ID)
	}
	e.FullDay = isDateValue(dtStart)

	if e.FullDay {
		start, err := parseDate(dtStart.Value, loc)
		if err != nil {
			return nil, fmt.Errorf("event %s: DTSTART %q: %w", e.ID, dtStart.Value, err)
		}
		e.Start = start.Time(loc)
		// A date-valued DTEND is exclusive, matching the entry model;
		// a missing one means a single day.
		end := start.AddDays(1)
		if p := ev.GetProperty(ical.ComponentPropertyDtEnd); p != nil {
			if d, err := parseDate(p.Value, loc); err == nil && d.After(start) {
				end = d
			}
		}
		e.End = end.Time(loc)
	} else {
		start, err := ev.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("event %s: DTSTART %q: %w", e.ID, dtStart.Value, err)
		}
		e.Start = start
		e.End = start
		if end, err := ev.GetEndAt(); err == nil {
			e.End = end
		}
	}

	if p := ev.GetProperty(ical.ComponentPropertyRrule); p != nil {
		e.Recurrence = p.Value
	}

	// EXDATE can appear multiple times, each holding a comma list.
	for _, p := range ev.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			d, err := parseDate(datePart(part), loc)
			if err != nil {
				log.Debug("unparsable EXDATE", "event", e.ID, "value", part)
				continue
			}
			e.ExcludedDates = append(e.ExcludedDates, d)
		}
	}
	return e, nil
}

// isDateValue reports whether a DTSTART/DTEND property carries a date
// rather than a date-time: VALUE=DATE, or a value without a time part.
func isDateValue(p *ical.IANAProperty) bool {
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

// parseDate parses the compact iCalendar date form, e.g. 20260302.
func parseDate(v string, loc *time.Location) (calendar.Date, error) {
	t, err := time.ParseInLocation("20060102", strings.TrimSpace(v), loc)
	if err != nil {
		return calendar.Date{}, err
	}
	return calendar.DateOf(t), nil
}

// datePart strips the time part off a date-time value.
func datePart(v string) string {
	if i := strings.IndexByte(v, 'T'); i >= 0 {
		return v[:i]
	}
	return v
}

// calendarName returns the calendar's display name: X-WR-CALNAME when
// present, else the file name without its extension.
func calendarName(c *ical.Calendar, path string) string {
	for _, p := range c.CalendarProperties {
		if p.IANAToken == "X-WR-CALNAME" && p.Value != "" {
			return p.Value
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
