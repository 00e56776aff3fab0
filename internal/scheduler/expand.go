package scheduler

import (
	"fmt"
	"time"

	"github.com/madrasa-live/backend/internal/models"
)

// DatedSlot is one concrete occurrence of a weekly schedule entry.
type DatedSlot struct {
	Date      time.Time
	StartTime models.TimeOfDay
	EndTime   models.TimeOfDay
}

// ExpandSchedule walks every calendar date from start to end inclusive and
// emits a slot for each date matching an entry's weekday. It performs no I/O.
// Entries with an unparseable weekday or time are reported in the returned
// error slice and do not affect the other entries. An inverted window
// (end before start) yields no slots.
func ExpandSchedule(start, end time.Time, entries []models.ScheduleEntry) ([]DatedSlot, []error) {
	var slots []DatedSlot
	var errs []error
	for _, entry := range entries {
		day, err := models.ParseWeekday(entry.DayOfWeek)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule entry %s: %w", entry.ID, err))
			continue
		}
		startTime, err := models.ParseTimeOfDay(entry.StartTime)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule entry %s: %w", entry.ID, err))
			continue
		}
		endTime, err := models.ParseTimeOfDay(entry.EndTime)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule entry %s: %w", entry.ID, err))
			continue
		}
		for d := dateOnly(start); !d.After(dateOnly(end)); d = d.AddDate(0, 0, 1) {
			if day.Matches(d) {
				slots = append(slots, DatedSlot{Date: d, StartTime: startTime, EndTime: endTime})
			}
		}
	}
	return slots, errs
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateIn rebuilds t's calendar date at midnight in loc. Date columns scan as
// midnight-UTC instants; converting the instant with In would shift the
// calendar day for locations west of UTC.
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
