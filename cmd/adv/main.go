// adv is a terminal viewer for the all-day row of a calendar: the
// strip where full-day and multi-day entries stack into lanes above an
// hourly grid. It renders one window of days, keeps the strip in sync
// with an iCalendar file, and scrolls the strip when it outgrows its
// height.
//
// Usage:
//
//	adv                         # Auto-discover calendar.ics
//	adv --calendar <path>       # Use a specific ICS file
//	adv --config <path>         # Load settings from a YAML file
//	adv --days 14               # Override the number of visible days
//	adv --date 2026-03-02       # Override the base date
//	adv --demo                  # Show a seeded demo calendar
//	adv --verbose               # Debug logging to adv.log
//	adv --version               # Print version and exit
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"alldayview/internal/allday"
	"alldayview/internal/calendar"
	"alldayview/internal/config"
	"alldayview/internal/ics"
	"alldayview/internal/scrollpane"
)

// Version is set via ldflags at build time (e.g. -X main.Version=v0.1.0).
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (or $ADV_CONFIG)")
	calendarPath := flag.String("calendar", "", "path to an ICS file (default: auto-discover)")
	daysFlag := flag.Int("days", 0, "number of visible days (overrides config)")
	dateFlag := flag.String("date", "", "base date as YYYY-MM-DD (default: today)")
	demoFlag := flag.Bool("demo", false, "seed a demo calendar instead of reading a file")
	verboseFlag := flag.Bool("verbose", false, "debug logging to adv.log")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("adv %s\n", Version)
		os.Exit(0)
	}

	log.SetLevel(log.WarnLevel)
	if *verboseFlag {
		f, err := os.OpenFile("adv.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "adv: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Default()
	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = os.Getenv("ADV_CONFIG")
	}
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "adv: config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *daysFlag > 0 {
		cfg.NumberOfDays = *daysFlag
	}
	if *dateFlag != "" {
		cfg.Date = *dateFlag
	}
	if *calendarPath != "" {
		cfg.Calendar = *calendarPath
	}

	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "adv: timezone: %v\n", err)
		os.Exit(1)
	}

	store := calendar.NewStore(loc)
	row := buildRow(store, cfg, loc)

	var watcher *ics.Watcher
	path := cfg.Calendar
	if *demoFlag {
		seedDemo(store, row.Date())
		path = ""
	} else {
		if path == "" {
			path, err = ics.Discover()
			if errors.Is(err, ics.ErrNoCalendarFile) {
				fmt.Fprintf(os.Stderr, "adv: %v\nadv: provide --calendar, set ADV_CALENDAR, or try --demo\n", err)
				os.Exit(1)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "adv: %v\n", err)
				os.Exit(1)
			}
		}
		if err := ics.Sync(store, path); err != nil {
			fmt.Fprintf(os.Stderr, "adv: import: %v\n", err)
			os.Exit(1)
		}
		watcher, err = ics.NewWatcher(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "adv: watch: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Close()
	}

	pane := scrollpane.New(row)
	pane.SetRowHeight(float64(cfg.RowHeight))
	pane.SetScrollHeight(float64(cfg.ScrollHeight))
	scrollbar := &scrollpane.Scrollbar{}
	pane.AttachScrollbar(scrollbar)

	m := newModel(store, row, pane, scrollbar, path)

	// The autoscroll loop runs off the UI goroutine; its ticks are
	// marshaled back through the program's message queue. The program
	// pointer is captured by reference and set right below, before any
	// gesture can fire a tick.
	var p *tea.Program
	m.auto = scrollpane.NewAutoscroller(pane, func(f func()) {
		p.Send(applyScrollMsg{fn: f})
	})
	p = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if watcher != nil {
		go func() {
			for range watcher.Changes() {
				p.Send(calendarChangedMsg{})
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "adv: %v\n", err)
		os.Exit(1)
	}
}

// buildRow constructs the strip and applies the configuration to it.
func buildRow(store *calendar.Store, cfg *config.Config, loc *time.Location) *allday.Row {
	row := allday.New(nil, nil, loc)
	row.Attach(store)
	row.SetNumberOfDays(cfg.NumberOfDays)
	row.SetAdjustToWeekStart(cfg.AdjustToWeekStart)
	row.SetWeekStart(cfg.WeekStartDay())
	row.SetWeekendDays(cfg.WeekendSet()...)
	row.SetShowToday(cfg.ShowToday)
	row.SetRowMetrics(allday.RowMetrics{
		RowHeight:     float64(cfg.RowHeight),
		RowSpacing:    float64(cfg.RowSpacing),
		ColumnSpacing: float64(cfg.ColumnSpacing),
		ExtraPadding: allday.Insets{
			Top:    float64(cfg.ExtraPaddingTop),
			Bottom: float64(cfg.ExtraPaddingBottom),
		},
	})
	if cfg.Date != "" {
		d, err := calendar.ParseDate(cfg.Date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "adv: date: %v\n", err)
			os.Exit(1)
		}
		row.SetDate(d)
	}
	return row
}

// seedDemo fills the store with a week of sample entries around base.
func seedDemo(s *calendar.Store, base calendar.Date) {
	loc := s.Location()
	work := calendar.NewCalendar("work", ics.Palette[0])
	personal := calendar.NewCalendar("personal", ics.Palette[1])
	s.AddCalendar(work)
	s.AddCalendar(personal)

	s.AddEntry(work, calendar.NewEntry("Offsite", base, base.AddDays(2), loc))
	s.AddEntry(work, calendar.NewEntry("Release window", base.AddDays(1), base.AddDays(4), loc))
	s.AddEntry(work, calendar.NewEntry("Conference", base.AddDays(3), base.AddDays(9), loc))
	s.AddEntry(personal, calendar.NewEntry("Visitors", base.AddDays(2), base.AddDays(3), loc))
	s.AddEntry(personal, calendar.NewEntry("Marathon", base.AddDays(5), base.AddDays(5), loc))

	standup := calendar.NewEntry("Standup notes", base, base, loc)
	standup.Recurrence = "FREQ=WEEKLY"
	s.AddEntry(work, standup)

	// A timed entry; the strip never shows it.
	s.AddEntry(work, calendar.NewTimedEntry("1:1",
		base.Time(loc).Add(14*time.Hour), base.Time(loc).Add(15*time.Hour)))
}
