// Package ics loads calendar entries from iCalendar files and watches
// them for changes.
package ics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const defaultFile = "calendar.ics"

// ErrNoCalendarFile reports that discovery found no calendar file.
var ErrNoCalendarFile = errors.New("no calendar file found")

// Discover finds the calendar file path.
// Priority: ADV_CALENDAR env var > calendar.ics in CWD > walk up parents.
func Discover() (string, error) {
	if env := os.Getenv("ADV_CALENDAR"); env != "" {
		if _, err := os.Stat(env); err == nil {
			return env, nil
		}
		return "", fmt.Errorf("ADV_CALENDAR=%q: %w", env, os.ErrNotExist)
	}

	// Check CWD first.
	if _, err := os.Stat(defaultFile); err == nil {
		abs, err := filepath.Abs(defaultFile)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path for %s: %w", defaultFile, err)
		}
		return abs, nil
	}

	// Walk up parent directories.
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, defaultFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("looked for %s in the working directory and its parents: %w",
		defaultFile, ErrNoCalendarFile)
}
