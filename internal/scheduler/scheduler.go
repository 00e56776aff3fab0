// Package scheduler expands weekly course schedules into dated live sessions
// and advances each session's lifecycle (scheduled -> live -> ended) on
// wall-clock time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madrasa-live/backend/internal/models"
)

const (
	// DefaultWindowMonths bounds generation when a course has no end date.
	DefaultWindowMonths = 3
	// ActivationLead is how long before its start time a session may go live.
	ActivationLead = 10 * time.Minute
)

// CourseSource lists the courses eligible for session generation.
type CourseSource interface {
	ListActiveLive(ctx context.Context, courseID *uuid.UUID) ([]models.Course, error)
}

// SessionStore persists materialized sessions. Create must be atomic with
// respect to the (course, date, start time) uniqueness key, and Transition
// must only apply when the current status still matches from.
type SessionStore interface {
	Exists(ctx context.Context, courseID uuid.UUID, date time.Time, startTime models.TimeOfDay) (bool, error)
	Create(ctx context.Context, session *models.LiveSession) (bool, error)
	ListForActivation(ctx context.Context, date time.Time) ([]models.LiveSession, error)
	Transition(ctx context.Context, id uuid.UUID, from, to models.SessionStatus) (bool, error)
}

// Scheduler materializes and activates live sessions. All date arithmetic
// happens in a single location so weekday matching is stable across the run.
type Scheduler struct {
	courses CourseSource
	store   SessionStore
	clock   Clock
	loc     *time.Location
	logger  *zap.Logger
}

// New creates a Scheduler. Nil clock, location, and logger default to the
// system clock, UTC, and a no-op logger.
func New(courses CourseSource, store SessionStore, clock Clock, loc *time.Location, logger *zap.Logger) *Scheduler {
	if clock == nil {
		clock = systemClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{courses: courses, store: store, clock: clock, loc: loc, logger: logger}
}

// GenerateSessions materializes missing sessions for every active live
// course, or for a single course when courseID is non-nil. After each
// course's expansion it runs an activation pass for today so same-day
// sessions are picked up in the same run. Per-course failures are recorded
// in the report and do not stop the batch.
func (s *Scheduler) GenerateSessions(ctx context.Context, courseID *uuid.UUID) (*Report, error) {
	courses, err := s.courses.ListActiveLive(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list active live courses: %w", err)
	}

	report := &Report{}
	for i := range courses {
		course := &courses[i]
		if len(course.Schedule) == 0 {
			s.logger.Warn("no schedule for course",
				zap.String("course_id", course.ID.String()),
				zap.String("title", course.Title),
			)
			report.NoSchedule = append(report.NoSchedule, course.ID)
			continue
		}

		cr := s.generateForCourse(ctx, course)
		report.Courses = append(report.Courses, cr)

		activation, err := s.ActivateSessions(ctx, s.clock.Now())
		if err != nil {
			s.logger.Error("activation pass failed", zap.Error(err),
				zap.String("course_id", course.ID.String()))
			continue
		}
		if report.Activation == nil {
			report.Activation = &ActivationReport{}
		}
		report.Activation.merge(activation)
	}
	return report, nil
}

func (s *Scheduler) generateForCourse(ctx context.Context, course *models.Course) CourseReport {
	cr := CourseReport{CourseID: course.ID, Title: course.Title}

	now := s.clock.Now().In(s.loc)
	start := now
	if course.StartDate != nil {
		start = dateIn(*course.StartDate, s.loc)
	}
	end := now.AddDate(0, DefaultWindowMonths, 0)
	if course.EndDate != nil {
		end = dateIn(*course.EndDate, s.loc)
	}

	slots, errs := ExpandSchedule(start, end, course.Schedule)
	cr.InvalidEntries = len(errs)
	for _, err := range errs {
		s.logger.Warn("invalid schedule entry skipped", zap.Error(err),
			zap.String("course_id", course.ID.String()))
	}

	for _, slot := range slots {
		created, err := s.materialize(ctx, course.ID, slot)
		if err != nil {
			cr.Error = err.Error()
			s.logger.Error("session materialization failed", zap.Error(err),
				zap.String("course_id", course.ID.String()),
				zap.Time("session_date", slot.Date),
			)
			return cr
		}
		if created {
			cr.Created++
			s.logger.Info("session created",
				zap.String("course_id", course.ID.String()),
				zap.String("title", course.Title),
				zap.String("session_date", slot.Date.Format("2006-01-02")),
				zap.String("start_time", slot.StartTime.String()),
			)
		} else {
			cr.Skipped++
		}
	}
	return cr
}

// materialize creates the session for one slot unless it already exists.
// The store's uniqueness key is the backstop for concurrent runs, so a
// false Create after a negative Exists is counted as a skip, not an error.
func (s *Scheduler) materialize(ctx context.Context, courseID uuid.UUID, slot DatedSlot) (bool, error) {
	exists, err := s.store.Exists(ctx, courseID, slot.Date, slot.StartTime)
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	if exists {
		return false, nil
	}
	session := &models.LiveSession{
		CourseID:    courseID,
		SessionDate: slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      models.StatusScheduled,
	}
	created, err := s.store.Create(ctx, session)
	if err != nil {
		return false, fmt.Errorf("create session: %w", err)
	}
	return created, nil
}

// ActivateSessions advances today's sessions against ref. A scheduled
// session goes live inside [start-ActivationLead, end]; any session whose
// end has passed goes to ended, including one set live in this same pass.
// Ended is terminal. Transitions are conditional on the current status, so
// overlapping runs cannot double-apply.
func (s *Scheduler) ActivateSessions(ctx context.Context, ref time.Time) (*ActivationReport, error) {
	ref = ref.In(s.loc)
	day := dateOnly(ref)

	sessions, err := s.store.ListForActivation(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("list sessions for %s: %w", day.Format("2006-01-02"), err)
	}

	report := &ActivationReport{Date: day.Format("2006-01-02")}
	for i := range sessions {
		sess := &sessions[i]
		startAt, err := sess.StartTime.On(day)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("session %s: %v", sess.ID, err))
			continue
		}
		endAt, err := sess.EndTime.On(day)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("session %s: %v", sess.ID, err))
			continue
		}

		status := sess.Status
		if status == models.StatusScheduled &&
			!ref.Before(startAt.Add(-ActivationLead)) && !ref.After(endAt) {
			ok, err := s.store.Transition(ctx, sess.ID, models.StatusScheduled, models.StatusLive)
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("session %s: %v", sess.ID, err))
				continue
			}
			if ok {
				status = models.StatusLive
				report.Activated = append(report.Activated, sess.ID)
				s.logger.Info("session live",
					zap.String("session_id", sess.ID.String()),
					zap.String("course_id", sess.CourseID.String()),
				)
			}
		}

		// Evaluated after the live check so a session that went live above
		// still ends in the same pass when its end time has already passed.
		if ref.After(endAt) && status != models.StatusEnded {
			ok, err := s.store.Transition(ctx, sess.ID, status, models.StatusEnded)
			if err != nil {
				report.Errors = append(report.Errors, fmt.Sprintf("session %s: %v", sess.ID, err))
				continue
			}
			if ok {
				report.Ended = append(report.Ended, sess.ID)
				s.logger.Info("session ended",
					zap.String("session_id", sess.ID.String()),
					zap.String("course_id", sess.CourseID.String()),
				)
			}
		}
	}
	return report, nil
}

// ActivateNow runs an activation pass at the scheduler's current time.
func (s *Scheduler) ActivateNow(ctx context.Context) (*ActivationReport, error) {
	return s.ActivateSessions(ctx, s.clock.Now())
}
