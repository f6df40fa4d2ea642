package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	TimeFormat = "HH:MM"
	DateFormat = "YYYY-MM-DD"

	DefaultDurationMinutes = 30
)

// FormatError reports a malformed date or time string.
type FormatError struct {
	Field    string
	Value    string
	Expected string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected %s", e.Field, e.Value, e.Expected)
}

// ToMinutes converts "HH:MM" to minutes since midnight. The hour must be 0-23
// and the minute 0-59, so "24:00" and "12:60" are FormatErrors.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, &FormatError{Field: "time", Value: hhmm, Expected: TimeFormat}
	}

	hour, ok := parseClockPart(parts[0], 23)
	if !ok {
		return 0, &FormatError{Field: "time", Value: hhmm, Expected: TimeFormat}
	}
	minute, ok := parseClockPart(parts[1], 59)
	if !ok {
		return 0, &FormatError{Field: "time", Value: hhmm, Expected: TimeFormat}
	}

	return hour*60 + minute, nil
}

func parseClockPart(s string, limit int) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > limit {
		return 0, false
	}
	return n, true
}

// FormatMinutes is the inverse of ToMinutes.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps treats each appointment as the half-open interval [start, start+dur).
// Non-positive durations count as the default booking length.
func Overlaps(startA, durA, startB, durB int) bool {
	durA = normalizeDuration(durA)
	durB = normalizeDuration(durB)
	return max(startA, startB) < min(startA+durA, startB+durB)
}

func normalizeDuration(d int) int {
	if d <= 0 {
		return DefaultDurationMinutes
	}
	return d
}

func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, &FormatError{Field: "date", Value: date, Expected: DateFormat}
	}
	return t, nil
}

// WeekdayName returns the English weekday ("Monday") for a YYYY-MM-DD date.
func WeekdayName(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

// CalendarDate reduces a stored slot date to YYYY-MM-DD, ignoring time of day.
func CalendarDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
