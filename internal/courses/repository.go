package courses

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/madrasa-live/backend/internal/models"
)

// Repository handles course persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a course repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new course.
func (r *Repository) Create(ctx context.Context, c *models.Course) error {
	const q = `INSERT INTO courses (id, title, course_type, is_active, start_date, end_date)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, c.Title, c.CourseType, c.IsActive, c.StartDate, c.EndDate).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID returns a course with its schedule entries.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	const q = `SELECT id, title, course_type, is_active, start_date, end_date, created_at, updated_at
		FROM courses WHERE id = $1`
	var c models.Course
	var courseType string
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&c.ID, &c.Title, &courseType, &c.IsActive, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.CourseType = models.CourseType(courseType)
	schedule, err := r.listSchedule(ctx, []uuid.UUID{c.ID})
	if err != nil {
		return nil, err
	}
	c.Schedule = schedule[c.ID]
	return &c, nil
}

// AddScheduleEntry adds a weekly schedule entry to a course.
func (r *Repository) AddScheduleEntry(ctx context.Context, e *models.ScheduleEntry) error {
	const q = `INSERT INTO course_schedule (id, course_id, day_of_week, start_time, end_time)
		VALUES (gen_random_uuid(), $1, $2, $3::time, $4::time)
		RETURNING id`
	return r.pool.QueryRow(ctx, q, e.CourseID, e.DayOfWeek, e.StartTime, e.EndTime).Scan(&e.ID)
}

// ListActiveLive returns all active live courses with their schedule entries,
// optionally filtered to a single course. Inactive and recorded courses are
// never returned.
func (r *Repository) ListActiveLive(ctx context.Context, courseID *uuid.UUID) ([]models.Course, error) {
	base := `SELECT id, title, course_type, is_active, start_date, end_date, created_at, updated_at
		FROM courses WHERE course_type = 'live' AND is_active = true`
	var args []interface{}
	if courseID != nil {
		base += ` AND id = $1`
		args = append(args, *courseID)
	}
	rows, err := r.pool.Query(ctx, base+` ORDER BY created_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Course
	var ids []uuid.UUID
	for rows.Next() {
		var c models.Course
		var courseType string
		if err := rows.Scan(&c.ID, &c.Title, &courseType, &c.IsActive, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.CourseType = models.CourseType(courseType)
		list = append(list, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	schedule, err := r.listSchedule(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load schedule entries: %w", err)
	}
	for i := range list {
		list[i].Schedule = schedule[list[i].ID]
	}
	return list, nil
}

// listSchedule loads schedule entries for the given courses, keyed by course.
// Entry order within a course follows insertion order.
func (r *Repository) listSchedule(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]models.ScheduleEntry, error) {
	const q = `SELECT id, course_id, day_of_week,
			to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI')
		FROM course_schedule WHERE course_id = ANY($1) ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q, courseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]models.ScheduleEntry)
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(&e.ID, &e.CourseID, &e.DayOfWeek, &e.StartTime, &e.EndTime); err != nil {
			return nil, err
		}
		out[e.CourseID] = append(out[e.CourseID], e)
	}
	return out, rows.Err()
}
