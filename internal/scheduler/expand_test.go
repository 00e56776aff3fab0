package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madrasa-live/backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandScheduleWindow(t *testing.T) {
	// 2024-01-01 and 2024-01-08 are the only Mondays in the window.
	entries := []models.ScheduleEntry{
		{DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"},
	}
	slots, errs := ExpandSchedule(date(2024, 1, 1), date(2024, 1, 14), entries)
	require.Empty(t, errs)
	require.Len(t, slots, 2)
	assert.Equal(t, date(2024, 1, 1), slots[0].Date)
	assert.Equal(t, date(2024, 1, 8), slots[1].Date)
	assert.Equal(t, models.TimeOfDay("10:00"), slots[0].StartTime)
	assert.Equal(t, models.TimeOfDay("11:00"), slots[0].EndTime)
}

func TestExpandScheduleInvertedWindow(t *testing.T) {
	entries := []models.ScheduleEntry{
		{DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"},
	}
	slots, errs := ExpandSchedule(date(2024, 1, 14), date(2024, 1, 1), entries)
	assert.Empty(t, slots)
	assert.Empty(t, errs)
}

func TestExpandScheduleSingleDayWindow(t *testing.T) {
	entries := []models.ScheduleEntry{
		{DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"},
	}
	slots, errs := ExpandSchedule(date(2024, 1, 1), date(2024, 1, 1), entries)
	require.Empty(t, errs)
	require.Len(t, slots, 1)
	assert.Equal(t, date(2024, 1, 1), slots[0].Date)
}

func TestExpandScheduleCaseInsensitiveWeekday(t *testing.T) {
	entries := []models.ScheduleEntry{
		{DayOfWeek: "Monday", StartTime: "10:00", EndTime: "11:00"},
	}
	slots, errs := ExpandSchedule(date(2024, 1, 1), date(2024, 1, 7), entries)
	require.Empty(t, errs)
	assert.Len(t, slots, 1)
}

func TestExpandScheduleTwoEntriesSameDay(t *testing.T) {
	// Morning and evening slot on the same weekday produce distinct slots.
	entries := []models.ScheduleEntry{
		{DayOfWeek: "monday", StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: "monday", StartTime: "18:00", EndTime: "19:00"},
	}
	slots, errs := ExpandSchedule(date(2024, 1, 1), date(2024, 1, 7), entries)
	require.Empty(t, errs)
	require.Len(t, slots, 2)
	assert.Equal(t, models.TimeOfDay("09:00"), slots[0].StartTime)
	assert.Equal(t, models.TimeOfDay("18:00"), slots[1].StartTime)
}

func TestExpandScheduleInvalidEntries(t *testing.T) {
	entries := []models.ScheduleEntry{
		{DayOfWeek: "moonday", StartTime: "10:00", EndTime: "11:00"},
		{DayOfWeek: "tuesday", StartTime: "later", EndTime: "11:00"},
		{DayOfWeek: "wednesday", StartTime: "10:00", EndTime: "11:00"},
	}
	slots, errs := ExpandSchedule(date(2024, 1, 1), date(2024, 1, 7), entries)
	assert.Len(t, errs, 2)
	// The valid wednesday entry still expands.
	require.Len(t, slots, 1)
	assert.Equal(t, date(2024, 1, 3), slots[0].Date)
}

func TestExpandScheduleTimeComponentIgnored(t *testing.T) {
	// Window bounds carrying a time of day still include their own dates.
	start := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 8, 0, 15, 0, 0, time.UTC)
	entries := []models.ScheduleEntry{
		{DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"},
	}
	slots, errs := ExpandSchedule(start, end, entries)
	require.Empty(t, errs)
	assert.Len(t, slots, 2)
}
