package service

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts either a bare date or an RFC3339 timestamp and
// normalizes it to midnight UTC. Assignments and job conflict checks work
// at day granularity, so the time of day is deliberately discarded.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, raw)
	}
	return NormalizeDate(t), nil
}

// NormalizeDate truncates a timestamp to midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the [start, end) window covering the calendar day of t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := NormalizeDate(t)
	return start, start.AddDate(0, 0, 1)
}
