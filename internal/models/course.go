package models

import (
	"time"

	"github.com/google/uuid"
)

// CourseType distinguishes live (scheduled) courses from recorded ones.
type CourseType string

const (
	CourseTypeLive     CourseType = "live"
	CourseTypeRecorded CourseType = "recorded"
)

// Course is a marketplace course. Only active live courses are expanded
// into dated sessions.
type Course struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	CourseType CourseType      `json:"course_type"`
	IsActive   bool            `json:"is_active"`
	StartDate  *time.Time      `json:"start_date,omitempty"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	Schedule   []ScheduleEntry `json:"schedule,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ScheduleEntry is one weekly recurring slot of a course
// (e.g. monday 10:00-11:00).
type ScheduleEntry struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	DayOfWeek string    `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}
