package utils

import (
	"fmt"
	"time"
)

const (
	// ClockLayout is the wall-clock format used across the API ("HH:MM", 24h).
	ClockLayout = "15:04"
	// DateLayout is the calendar-date format used across the API.
	DateLayout = "2006-01-02"
)

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" string as a naive local date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// MinutesBetween returns end minus start in minutes for two "HH:MM" strings.
// The error of either parse is surfaced.
func MinutesBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// AddMinutes shifts an "HH:MM" string by the given number of minutes,
// clamped to the same day.
func AddMinutes(clock string, minutes int) (string, error) {
	m, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	m += minutes
	if m < 0 {
		m = 0
	}
	if m > 23*60+59 {
		m = 23*60 + 59
	}
	return FormatClock(m), nil
}
