package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// CombineDateTime joins a calendar date and a time of day into a single naive
// local instant string. No timezone conversion is performed; values are
// wall-clock local time throughout.
func CombineDateTime(date, clock string) string {
	return date + "T" + clock + ":00"
}

// AddMinutes shifts an "HH:MM" time of day by delta minutes, wrapping around
// midnight in both directions without touching the date. The input must be a
// well-formed "HH:MM" string; that is a documented precondition, not a
// runtime check.
func AddMinutes(clock string, delta int) string {
	parts := strings.SplitN(clock, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])

	total := hour*60 + minute + delta
	normalized := ((total % minutesPerDay) + minutesPerDay) % minutesPerDay

	return fmt.Sprintf("%02d:%02d", normalized/60, normalized%60)
}

// SplitDateTime splits a combined instant into its date and "HH:MM" parts,
// truncating seconds. The second return is empty when the instant carries no
// time component.
func SplitDateTime(instant string) (date, clock string) {
	date, rest, found := strings.Cut(instant, "T")
	if !found {
		return instant, ""
	}
	if len(rest) > 5 {
		rest = rest[:5]
	}
	return date, rest
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateString formats a moment as the calendar-date key used for grid
// bucketing and cache lookups.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// InstantString formats a moment as a combined naive local instant.
func InstantString(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}

// ParseDate parses a naive local timestamp, falling back through the formats
// the clinic API is known to emit.
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.Parse("2006-01-02T15:04:05", str)
	if err != nil {
		parsedDate, err = time.Parse(time.RFC3339, str)
		if err != nil {
			parsedDate, err = time.Parse("2006-01-02", str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse time: %v", err)
			}
		}
	}

	return parsedDate, nil
}
