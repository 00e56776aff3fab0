package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/madrasa-live/backend/internal/models"
)

const sessionColumns = `id, course_id, session_date,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	status, created_at, updated_at`

// Repository handles live session persistence. It implements the scheduler's
// SessionStore contract on PostgreSQL; the unique index on
// (course_id, session_date, start_time) backstops concurrent generation runs.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a live session repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Exists reports whether a session is already materialized for the slot.
func (r *Repository) Exists(ctx context.Context, courseID uuid.UUID, date time.Time, startTime models.TimeOfDay) (bool, error) {
	const q = `SELECT EXISTS (
		SELECT 1 FROM live_sessions
		WHERE course_id = $1 AND session_date = $2::date AND start_time = $3::time)`
	var exists bool
	err := r.pool.QueryRow(ctx, q, courseID, date.Format("2006-01-02"), string(startTime)).Scan(&exists)
	return exists, err
}

// Create inserts a session. Returns false without error when the slot was
// concurrently materialized (unique index conflict).
func (r *Repository) Create(ctx context.Context, s *models.LiveSession) (bool, error) {
	const q = `INSERT INTO live_sessions (id, course_id, session_date, start_time, end_time, status)
		VALUES (gen_random_uuid(), $1, $2::date, $3::time, $4::time, $5)
		ON CONFLICT (course_id, session_date, start_time) DO NOTHING
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, q, s.CourseID, s.SessionDate.Format("2006-01-02"), string(s.StartTime), string(s.EndTime), string(s.Status)).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListForActivation returns the sessions on date still subject to lifecycle
// transitions: scheduled ones and live ones whose end time may have passed.
func (r *Repository) ListForActivation(ctx context.Context, date time.Time) ([]models.LiveSession, error) {
	q := `SELECT ` + sessionColumns + `
		FROM live_sessions
		WHERE session_date = $1::date AND status IN ('scheduled', 'live')
		ORDER BY start_time`
	rows, err := r.pool.Query(ctx, q, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

// Transition moves a session from one status to another. Returns false when
// the session's current status no longer matches from, so overlapping runs
// cannot double-apply a transition.
func (r *Repository) Transition(ctx context.Context, id uuid.UUID, from, to models.SessionStatus) (bool, error) {
	const q = `UPDATE live_sessions SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2`
	tag, err := r.pool.Exec(ctx, q, id, string(from), string(to))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByCourse returns all materialized sessions of a course in calendar order.
func (r *Repository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.LiveSession, error) {
	q := `SELECT ` + sessionColumns + `
		FROM live_sessions WHERE course_id = $1
		ORDER BY session_date, start_time`
	rows, err := r.pool.Query(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

func scanSessions(rows pgx.Rows) ([]models.LiveSession, error) {
	var list []models.LiveSession
	for rows.Next() {
		var s models.LiveSession
		var startTime, endTime, status string
		if err := rows.Scan(&s.ID, &s.CourseID, &s.SessionDate, &startTime, &endTime, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.StartTime = models.TimeOfDay(startTime)
		s.EndTime = models.TimeOfDay(endTime)
		s.Status = models.SessionStatus(status)
		list = append(list, s)
	}
	return list, rows.Err()
}
