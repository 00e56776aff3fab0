package scheduler

import "github.com/google/uuid"

// CourseReport summarizes one course's materialization pass.
type CourseReport struct {
	CourseID       uuid.UUID `json:"course_id"`
	Title          string    `json:"title,omitempty"`
	Created        int       `json:"created"`
	Skipped        int       `json:"skipped"`
	InvalidEntries int       `json:"invalid_entries,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// Report aggregates a full generation run. Failures are recorded per course
// and never abort the batch; the caller decides how to surface them.
type Report struct {
	Courses    []CourseReport    `json:"courses"`
	NoSchedule []uuid.UUID       `json:"no_schedule,omitempty"`
	Activation *ActivationReport `json:"activation,omitempty"`
}

// TotalCreated returns the number of sessions created across all courses.
func (r *Report) TotalCreated() int {
	n := 0
	for _, c := range r.Courses {
		n += c.Created
	}
	return n
}

// ActivationReport summarizes one activation pass.
type ActivationReport struct {
	Date      string      `json:"date"`
	Activated []uuid.UUID `json:"activated,omitempty"`
	Ended     []uuid.UUID `json:"ended,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
}

func (r *ActivationReport) merge(other *ActivationReport) {
	if other == nil {
		return
	}
	r.Date = other.Date
	r.Activated = append(r.Activated, other.Activated...)
	r.Ended = append(r.Ended, other.Ended...)
	r.Errors = append(r.Errors, other.Errors...)
}
