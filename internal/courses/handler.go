package courses

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/madrasa-live/backend/internal/models"
	"github.com/madrasa-live/backend/pkg/response"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// CreateRequest is the body for POST /courses.
type CreateRequest struct {
	Title      string  `json:"title" binding:"required"`
	CourseType string  `json:"course_type" binding:"required,oneof=live recorded"`
	IsActive   bool    `json:"is_active"`
	StartDate  *string `json:"start_date"` // "2006-01-02"; omitted = window opens at run time
	EndDate    *string `json:"end_date"`
}

// ScheduleEntryRequest is the body for POST /courses/:id/schedule.
type ScheduleEntryRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// Handler handles course HTTP endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a course handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Create handles POST /courses.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var startDate, endDate *time.Time
	if req.StartDate != nil {
		t, err := parseDate(*req.StartDate)
		if err != nil {
			response.BadRequest(c, "invalid start_date")
			return
		}
		startDate = &t
	}
	if req.EndDate != nil {
		t, err := parseDate(*req.EndDate)
		if err != nil {
			response.BadRequest(c, "invalid end_date")
			return
		}
		endDate = &t
	}

	course := &models.Course{
		Title:      req.Title,
		CourseType: models.CourseType(req.CourseType),
		IsActive:   req.IsActive,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	if err := h.repo.Create(c.Request.Context(), course); err != nil {
		response.Internal(c, "failed to create course")
		return
	}
	response.Created(c, course)
}

// GetByID handles GET /courses/:id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	course, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "course not found")
		return
	}
	response.OK(c, course)
}

// AddScheduleEntry handles POST /courses/:id/schedule. Weekday and time
// values are validated here so the generator only ever sees well-formed
// entries.
func (h *Handler) AddScheduleEntry(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid course id")
		return
	}
	var req ScheduleEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	day, err := models.ParseWeekday(req.DayOfWeek)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	startTime, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	endTime, err := models.ParseTimeOfDay(req.EndTime)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	entry := &models.ScheduleEntry{
		CourseID:  courseID,
		DayOfWeek: day.String(),
		StartTime: startTime.String(),
		EndTime:   endTime.String(),
	}
	if err := h.repo.AddScheduleEntry(c.Request.Context(), entry); err != nil {
		response.Internal(c, "failed to add schedule entry")
		return
	}
	response.Created(c, entry)
}
