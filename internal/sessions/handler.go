package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/madrasa-live/backend/internal/scheduler"
	"github.com/madrasa-live/backend/pkg/queue"
	"github.com/madrasa-live/backend/pkg/response"
)

// Handler handles live session HTTP endpoints.
type Handler struct {
	repo   *Repository
	sched  *scheduler.Scheduler
	queue  *queue.Queue
	logger *zap.Logger
}

// NewHandler creates a session handler.
func NewHandler(repo *Repository, sched *scheduler.Scheduler, q *queue.Queue, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{repo: repo, sched: sched, queue: q, logger: logger}
}

// GenerateForCourse handles POST /courses/:id/sessions/generate. Runs the
// generation pass synchronously for one course and returns the report.
func (h *Handler) GenerateForCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	report, err := h.sched.GenerateSessions(c.Request.Context(), &id)
	if err != nil {
		h.logger.Error("generation failed", zap.Error(err), zap.String("course_id", id.String()))
		response.Internal(c, "session generation failed")
		return
	}
	response.OK(c, report)
}

// GenerateAll handles POST /sessions/generate. Enqueues a job covering every
// active live course; the worker picks it up.
func (h *Handler) GenerateAll(c *gin.Context) {
	if err := h.queue.EnqueueGenerateSessions(c.Request.Context(), queue.GenerateSessionsPayload{}); err != nil {
		h.logger.Error("enqueue generation job failed", zap.Error(err))
		response.Internal(c, "failed to enqueue generation job")
		return
	}
	response.Accepted(c, gin.H{"queued": true})
}

// Activate handles POST /sessions/activate. Runs an activation pass at the
// current time; an operator escape hatch between scheduled runs.
func (h *Handler) Activate(c *gin.Context) {
	report, err := h.sched.ActivateNow(c.Request.Context())
	if err != nil {
		h.logger.Error("activation failed", zap.Error(err))
		response.Internal(c, "session activation failed")
		return
	}
	response.OK(c, report)
}

// ListByCourse handles GET /courses/:id/sessions.
func (h *Handler) ListByCourse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	list, err := h.repo.ListByCourse(c.Request.Context(), id)
	if err != nil {
		response.Internal(c, "failed to list sessions")
		return
	}
	response.OK(c, list)
}
