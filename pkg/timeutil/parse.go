// Package timeutil provides shared time parsing utilities.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var relativeTimeRe = regexp.MustCompile(`^(\d+)([mhdw])$`)

// Parse parses a time string that is either RFC3339 or a relative duration
// in the past like "2h", "30m", "7d".
//
// Examples:
//   - "now" or "" -> current time
//   - "2h" -> 2 hours ago
//   - "7d" -> 7 days ago
//   - "2026-03-01T06:00:00Z" -> specific RFC3339 time
func Parse(input string) (time.Time, error) {
	if input == "" || input == "now" {
		return time.Now().UTC(), nil
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t, nil
	}

	matches := relativeTimeRe.FindStringSubmatch(input)
	if matches != nil {
		value, _ := strconv.Atoi(matches[1])
		var unit time.Duration
		switch matches[2] {
		case "m":
			unit = time.Minute
		case "h":
			unit = time.Hour
		case "d":
			unit = 24 * time.Hour
		case "w":
			unit = 7 * 24 * time.Hour
		}
		return time.Now().UTC().Add(-time.Duration(value) * unit), nil
	}

	return time.Time{}, fmt.Errorf("invalid time format: %s - use RFC3339 (2026-03-01T06:00:00Z) or relative (2h, 30m, 7d)", input)
}

// FormatMillis renders a millisecond epoch timestamp for display.
func FormatMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04:05")
}
