package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a lower-case weekday name as stored in course schedules.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdays = map[Weekday]time.Weekday{
	Sunday:    time.Sunday,
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
}

// ParseWeekday normalizes and validates a weekday name (case-insensitive).
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := weekdays[d]; !ok {
		return "", fmt.Errorf("invalid day of week: %q", s)
	}
	return d, nil
}

// Matches reports whether t falls on this weekday.
func (d Weekday) Matches(t time.Time) bool {
	td, ok := weekdays[d]
	return ok && t.Weekday() == td
}

func (d Weekday) String() string { return string(d) }
