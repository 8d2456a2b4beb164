// Package config loads the viewer's YAML configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// NumberOfDays is how many day columns the strip shows.
	NumberOfDays int `yaml:"number_of_days"`

	// Date pins the window's base date as YYYY-MM-DD. Empty means
	// today.
	Date string `yaml:"date"`

	// WeekStart names the first day of the week, e.g. "monday".
	WeekStart string `yaml:"week_start"`

	// AdjustToWeekStart rolls the window back to the week start.
	AdjustToWeekStart bool `yaml:"adjust_to_week_start"`

	// WeekendDays lists the weekday names shaded as weekend.
	WeekendDays []string `yaml:"weekend_days"`

	// ShowToday toggles the today column highlight.
	ShowToday bool `yaml:"show_today"`

	// RowHeight is the height of one entry lane in terminal rows.
	RowHeight int `yaml:"row_height"`

	// RowSpacing is the gap between lanes.
	RowSpacing int `yaml:"row_spacing"`

	// ColumnSpacing is the gap a bar leaves before the next day column.
	ColumnSpacing int `yaml:"column_spacing"`

	// ExtraPaddingTop and ExtraPaddingBottom pad the strip inside its
	// content box.
	ExtraPaddingTop    int `yaml:"extra_padding_top"`
	ExtraPaddingBottom int `yaml:"extra_padding_bottom"`

	// ScrollHeight caps how tall the strip grows before it scrolls.
	ScrollHeight int `yaml:"scroll_height"`

	// Timezone is the IANA zone dates resolve in. Empty means the
	// system zone.
	Timezone string `yaml:"timezone"`

	// Calendar is the path to the ICS file to display. Empty enables
	// discovery.
	Calendar string `yaml:"calendar"`
}

// Default returns an in-memory default configuration.
func Default() *Config {
	return &Config{
		NumberOfDays:      7,
		WeekStart:         "monday",
		AdjustToWeekStart: true,
		WeekendDays:       []string{"saturday", "sunday"},
		ShowToday:         true,
		RowHeight:         1,
		RowSpacing:        0,
		ColumnSpacing:     1,
		ScrollHeight:      10,
	}
}

// Normalize fills in missing or invalid values so partially filled
// configs still behave.
func (c *Config) Normalize() {
	if c.NumberOfDays <= 0 {
		c.NumberOfDays = 7
	}
	if _, ok := weekdays[strings.ToLower(c.WeekStart)]; !ok {
		c.WeekStart = "monday"
	}
	if c.WeekendDays == nil {
		c.WeekendDays = []string{"saturday", "sunday"}
	}
	valid := c.WeekendDays[:0]
	for _, name := range c.WeekendDays {
		if _, ok := weekdays[strings.ToLower(name)]; ok {
			valid = append(valid, strings.ToLower(name))
		}
	}
	c.WeekendDays = valid
	if c.RowHeight < 1 {
		c.RowHeight = 1
	}
	if c.RowSpacing < 0 {
		c.RowSpacing = 0
	}
	if c.ColumnSpacing < 0 {
		c.ColumnSpacing = 1
	}
	if c.ScrollHeight <= 0 {
		c.ScrollHeight = 10
	}
}

// Load reads the YAML config at path. A missing file is created with
// defaults first, so the first run leaves an editable config behind.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path atomically, creating the parent directory
// if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".adv-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekStartDay returns the configured week start as a weekday.
func (c *Config) WeekStartDay() time.Weekday {
	if d, ok := weekdays[strings.ToLower(c.WeekStart)]; ok {
		return d
	}
	return time.Monday
}

// WeekendSet returns the configured weekend days as weekdays, dropping
// names it does not recognize.
func (c *Config) WeekendSet() []time.Weekday {
	var out []time.Weekday
	for _, name := range c.WeekendDays {
		if d, ok := weekdays[strings.ToLower(name)]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Location resolves the configured timezone. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
