// Package analytics is the pure computation core of the tracker: streaks,
// category breakdowns, cross-domain correlations, insight generation, and
// interruption cost modelling. Every function is a stateless transformation
// over already-fetched slices; nothing here performs I/O.
package analytics

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// ParseInstant is the single timestamp normalization point for the core.
// It accepts RFC 3339 with a 'Z' or explicit offset suffix, a timezone-naive
// timestamp (assumed UTC), or a bare calendar date, and anchors the result to
// UTC. Malformed input is returned as an error, never coerced: silently
// guessing at corrupt time data would falsify every derived metric downstream.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", dayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// DayOf truncates an instant to UTC midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey renders the UTC calendar date of an instant, the join key used by
// every date-bucketed aggregation.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// WeekStart returns the Monday of the week containing t, at UTC midnight.
func WeekStart(t time.Time) time.Time {
	day := DayOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of the month containing t, at UTC midnight.
func MonthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month after t.
func NextMonth(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0)
}
