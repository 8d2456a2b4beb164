package ics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"alldayview/internal/calendar"
)

func writeICS(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	body := strings.Join(lines, "\r\n") + "\r\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	path := writeICS(t, "team.ics",
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"X-WR-CALNAME:Team Calendar",
		"BEGIN:VEVENT",
		"UID:offsite-1",
		"SUMMARY:Offsite",
		"DTSTART;VALUE=DATE:20260302",
		"DTEND;VALUE=DATE:20260305",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:standup-1",
		"SUMMARY:Standup",
		"DTSTART;VALUE=DATE:20260302",
		"RRULE:FREQ=WEEKLY",
		"EXDATE;VALUE=DATE:20260316",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:call-1",
		"SUMMARY:Call",
		"DTSTART:20260303T100000Z",
		"DTEND:20260303T110000Z",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	cal, entries, err := ImportFile(path, time.UTC)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if cal.Name != "Team Calendar" {
		t.Errorf("calendar name %q, want the X-WR-CALNAME", cal.Name)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	byID := make(map[string]*calendar.Entry)
	for _, e := range entries {
		byID[e.ID] = e
		if e.Calendar != cal {
			t.Errorf("entry %s not attached to the imported calendar", e.ID)
		}
	}

	offsite := byID["offsite-1"]
	if !offsite.FullDay {
		t.Error("date-valued event should be full-day")
	}
	if got := offsite.StartDate(time.UTC); got != calendar.NewDate(2026, time.March, 2) {
		t.Errorf("offsite starts %v", got)
	}
	// DTEND is exclusive: the 5th means through the end of the 4th.
	if got := offsite.EndDate(time.UTC); got != calendar.NewDate(2026, time.March, 4) {
		t.Errorf("offsite ends %v", got)
	}

	standup := byID["standup-1"]
	if standup.Recurrence != "FREQ=WEEKLY" {
		t.Errorf("recurrence %q", standup.Recurrence)
	}
	if len(standup.ExcludedDates) != 1 || standup.ExcludedDates[0] != calendar.NewDate(2026, time.March, 16) {
		t.Errorf("excluded dates %v", standup.ExcludedDates)
	}
	if got := standup.EndDate(time.UTC); got != standup.StartDate(time.UTC) {
		t.Errorf("missing DTEND should mean one day, got %v", got)
	}

	call := byID["call-1"]
	if call.FullDay {
		t.Error("date-time event should not be full-day")
	}
	if call.Start.UTC().Hour() != 10 {
		t.Errorf("call starts %v", call.Start)
	}
}

func TestImportSkipsBrokenEvents(t *testing.T) {
	path := writeICS(t, "broken.ics",
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"SUMMARY:No UID here",
		"DTSTART;VALUE=DATE:20260302",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:good-1",
		"SUMMARY:Fine",
		"DTSTART;VALUE=DATE:20260302",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	_, entries, err := ImportFile(path, time.UTC)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "good-1" {
		t.Errorf("expected only the well-formed event, got %d entries", len(entries))
	}
}

func TestImportNamesCalendarFromFile(t *testing.T) {
	path := writeICS(t, "work.ics",
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"END:VCALENDAR",
	)

	cal, _, err := ImportFile(path, time.UTC)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if cal.Name != "work" {
		t.Errorf("calendar name %q, want the file stem", cal.Name)
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.ics")
	if err := os.WriteFile(path, []byte("not a calendar"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, _, err := ImportFile(path, time.UTC); err == nil {
		t.Error("ImportFile should fail on a non-ICS file")
	}
}

func TestSyncReplacesStore(t *testing.T) {
	path := writeICS(t, "team.ics",
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:offsite-1",
		"SUMMARY:Offsite",
		"DTSTART;VALUE=DATE:20260302",
		"DTEND;VALUE=DATE:20260305",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	s := calendar.NewStore(time.UTC)
	stale := calendar.NewCalendar("stale", "1")
	s.AddCalendar(stale)
	s.AddEntry(stale, calendar.NewEntry("old",
		calendar.NewDate(2026, time.March, 2), calendar.NewDate(2026, time.March, 2), time.UTC))

	if err := Sync(s, path); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(s.Calendars()) != 1 || s.Calendars()[0].Name != "team" {
		t.Errorf("store calendars = %v", s.Calendars())
	}
	entries := s.Entries()
	if len(entries) != 1 || entries[0].ID != "offsite-1" {
		t.Errorf("store should hold exactly the imported entries, got %d", len(entries))
	}
}
