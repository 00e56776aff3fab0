package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a live session. Transitions only
// move forward: scheduled -> live -> ended. Ended is terminal.
type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusLive      SessionStatus = "live"
	StatusEnded     SessionStatus = "ended"
)

// LiveSession is a concrete dated occurrence of a course's weekly schedule.
type LiveSession struct {
	ID          uuid.UUID     `json:"id"`
	CourseID    uuid.UUID     `json:"course_id"`
	SessionDate time.Time     `json:"session_date"`
	StartTime   TimeOfDay     `json:"start_time"`
	EndTime     TimeOfDay     `json:"end_time"`
	Status      SessionStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
