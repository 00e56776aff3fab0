package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time in 24-hour "HH:MM" form.
type TimeOfDay string

// ParseTimeOfDay validates and normalizes a time-of-day string.
// Accepts "HH:MM" and "HH:MM:SS" (Postgres time columns render the latter).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Format("15:04")), nil
		}
	}
	return "", fmt.Errorf("invalid time of day: %q", s)
}

// On combines the time of day with the calendar date of d, in d's location.
// Returns an error if the value was not produced by ParseTimeOfDay.
func (t TimeOfDay) On(d time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day: %q", t)
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, parsed.Hour(), parsed.Minute(), 0, 0, d.Location()), nil
}

func (t TimeOfDay) String() string { return string(t) }
