// Package dateparse resolves the date arguments accepted by p75 commands into
// daily log keys (YYYY-MM-DD). Logs describe days that already happened, so
// every form resolves to today or earlier.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/p75/internal/models"
)

// ParseDate parses a date input relative to the current local time.
//
// Supported formats:
//   - Exact dates: "2026-03-01"
//   - Relative days: "-1d"
//   - Relative weeks: "-2w"
//   - Day names: "monday", "tuesday", etc. (most recent occurrence, today included)
//   - Keywords: "today", "yesterday"
func ParseDate(input string) (string, error) {
	return ParseDateFrom(input, time.Now())
}

// ParseDateFrom parses a date input relative to now.
func ParseDateFrom(input string, now time.Time) (string, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return "", fmt.Errorf("empty date input")
	}
	today := models.FormatDate(now)

	if t, err := time.Parse(models.DateLayout, input); err == nil {
		date := t.Format(models.DateLayout)
		if date > today {
			return "", fmt.Errorf("date %s is in the future", date)
		}
		return date, nil
	}

	switch input {
	case "today":
		return today, nil
	case "yesterday":
		return models.FormatDate(now.AddDate(0, 0, -1)), nil
	}

	// Relative offsets: -Nd, -Nw
	if strings.HasPrefix(input, "-") && len(input) >= 3 {
		suffix := input[len(input)-1]
		n, err := strconv.Atoi(input[1 : len(input)-1])
		if err == nil && n >= 0 {
			switch suffix {
			case 'd':
				return models.FormatDate(now.AddDate(0, 0, -n)), nil
			case 'w':
				return models.FormatDate(now.AddDate(0, 0, -7*n)), nil
			default:
				return "", fmt.Errorf("unknown relative unit %q in %q (use d or w)", string(suffix), input)
			}
		}
	}

	dayMap := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if target, ok := dayMap[input]; ok {
		daysBack := (int(now.Weekday()) - int(target) + 7) % 7
		return models.FormatDate(now.AddDate(0, 0, -daysBack)), nil
	}

	return "", fmt.Errorf("unrecognized date format: %q", input)
}
