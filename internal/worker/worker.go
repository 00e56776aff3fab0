package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madrasa-live/backend/internal/scheduler"
	"github.com/madrasa-live/backend/pkg/queue"
	"github.com/madrasa-live/backend/pkg/redis"
)

// LockKey guards the generation pass across instances.
const LockKey = "scheduler:generation-run"

// Runner drives the session scheduler: a periodic tick covering every course
// plus a queue consumer for on-demand generation jobs.
type Runner struct {
	sched    *scheduler.Scheduler
	queue    *queue.Queue
	lock     *redis.Lock
	interval time.Duration
	logger   *zap.Logger
}

// NewRunner creates a scheduler runner. lock may be nil (single instance).
func NewRunner(sched *scheduler.Scheduler, q *queue.Queue, lock *redis.Lock, interval time.Duration, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{sched: sched, queue: q, lock: lock, interval: interval, logger: logger}
}

// Run ticks the full generate-and-activate pass until ctx is done. The first
// pass runs immediately.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runOnce(ctx, nil)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("scheduler runner stopping")
			return
		case <-ticker.C:
			r.runOnce(ctx, nil)
		}
	}
}

// ProcessJobs consumes generation jobs until ctx is done.
func (r *Runner) ProcessJobs(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("generation job worker stopping")
			return
		default:
		}

		job, _, err := r.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			r.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		r.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := r.process(ctx, job); err != nil {
			r.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := r.queue.Retry(ctx, job); reErr != nil {
				r.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}

func (r *Runner) process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeGenerateSessions {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.GenerateSessionsPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	r.runOnce(ctx, payload.CourseID)
	return nil
}

// runOnce executes one generation pass. With a lock configured, a pass
// already running elsewhere is skipped; the pass is idempotent, so the next
// tick reconciles anything missed.
func (r *Runner) runOnce(ctx context.Context, courseID *uuid.UUID) {
	if r.lock != nil {
		ok, err := r.lock.Acquire(ctx)
		if err != nil {
			r.logger.Warn("run lock acquire failed", zap.Error(err))
			return
		}
		if !ok {
			r.logger.Debug("generation pass already running elsewhere")
			return
		}
		defer func() {
			if err := r.lock.Release(ctx); err != nil {
				r.logger.Warn("run lock release failed", zap.Error(err))
			}
		}()
	}

	report, err := r.sched.GenerateSessions(ctx, courseID)
	if err != nil {
		r.logger.Error("generation pass failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.Int("courses", len(report.Courses)),
		zap.Int("created", report.TotalCreated()),
		zap.Int("no_schedule", len(report.NoSchedule)),
	}
	if report.Activation != nil {
		fields = append(fields,
			zap.Int("activated", len(report.Activation.Activated)),
			zap.Int("ended", len(report.Activation.Ended)),
		)
	}
	r.logger.Info("generation pass complete", fields...)
}
