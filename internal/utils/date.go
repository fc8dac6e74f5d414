package utils

import (
	"fmt"
	"time"
)

// DayUTC truncates a timestamp to UTC midnight. All calendar-day comparisons
// go through this so stored timestamps and local-timezone inputs agree.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a calendar day from "2006-01-02" or an RFC 3339 timestamp,
// normalized to UTC midnight.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return DayUTC(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DayUTC(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
