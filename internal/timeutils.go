package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	ClockLayout = "15:04:05"
	DateLayout  = "2006-01-02"
)

// ParseClockMinutes converts an "HH:MM:SS" clock string to minutes since
// midnight. Seconds are accepted but do not contribute; upstream waypoint
// times are minute-aligned. "HH:MM" is tolerated for hand-written input.
func ParseClockMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, InvalidInput("malformed clock time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, InvalidInput("malformed clock time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, InvalidInput("malformed clock time %q", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, InvalidInput("malformed clock time %q", s)
		}
	}
	return h*60 + m, nil
}

// ParseDate parses a "YYYY-MM-DD" calendar date at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, InvalidInput("malformed date %q", s)
	}
	return t, nil
}

// FormatDate renders a calendar date as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// CombineDateClock anchors a clock time on a calendar date, producing the
// absolute instant used for duration arithmetic.
func CombineDateClock(date time.Time, clock string) (time.Time, error) {
	minutes, err := ParseClockMinutes(clock)
	if err != nil {
		return time.Time{}, err
	}
	return date.Add(time.Duration(minutes) * time.Minute), nil
}

// FormatMinutes renders a duration in minutes as "15h30m", the display
// shape search responses use.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
