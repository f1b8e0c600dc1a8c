package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-alarm/internal/app"
)

type ScheduleHandler struct {
	useCase app.ScheduleUseCase
}

func NewScheduleHandler(useCase app.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{
		useCase: useCase,
	}
}

// CreateSchedule arms a reminder the CRUD service just created.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	id := c.Param("id")

	output, err := h.useCase.Schedule(c.Request.Context(), app.ScheduleInput{ReminderID: id})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.InfoContext(c.Request.Context(), "reminder scheduled",
		"reminder_id", id,
		"scheduled", output.Scheduled,
	)
	c.JSON(http.StatusCreated, FromScheduleOutput(output))
}

// ReplaceSchedule rearms a reminder after any edit, including disabling it.
func (h *ScheduleHandler) ReplaceSchedule(c *gin.Context) {
	id := c.Param("id")

	output, err := h.useCase.Reschedule(c.Request.Context(), app.ScheduleInput{ReminderID: id})
	if err != nil {
		h.handleError(c, err)

		return
	}

	slog.InfoContext(c.Request.Context(), "reminder rescheduled",
		"reminder_id", id,
		"scheduled", output.Scheduled,
	)
	c.JSON(http.StatusOK, FromScheduleOutput(output))
}

func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")

	output, err := h.useCase.Cancel(c.Request.Context(), app.CancelInput{ReminderID: id})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, CancelResponse{
		ReminderID: output.ReminderID,
		Cancelled:  output.Cancelled,
	})
}

func (h *ScheduleHandler) Acknowledge(c *gin.Context) {
	var req AcknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(c.Request.Context(), "request validation failed",
			"error", err,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})

		return
	}

	output, err := h.useCase.Acknowledge(c.Request.Context(), app.AcknowledgeInput{
		ReminderID: c.Param("id"),
		UserID:     req.UserID,
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, AcknowledgeResponse{
		ReminderID:      output.ReminderID,
		UserID:          output.UserID,
		FollowUpPending: output.FollowUpPending,
	})
}

func (h *ScheduleHandler) RemoveMember(c *gin.Context) {
	output, err := h.useCase.RemoveMember(c.Request.Context(), app.RemoveMemberInput{
		FamilyID: c.Param("family_id"),
		UserID:   c.Param("user_id"),
	})
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, RemoveMemberResponse{
		FamilyID:          output.FamilyID,
		UserID:            output.UserID,
		FollowUpsAffected: output.FollowUpsAffected,
	})
}

func (h *ScheduleHandler) ListJobs(c *gin.Context) {
	output, err := h.useCase.ListJobs(c.Request.Context())
	if err != nil {
		h.handleError(c, err)

		return
	}

	c.JSON(http.StatusOK, FromJobsOutput(output))
}

func (h *ScheduleHandler) handleError(c *gin.Context, err error) {
	var validationErr *app.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})

		return
	}

	if errors.Is(err, app.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "resource not found",
		})

		return
	}

	if errors.Is(err, app.ErrShuttingDown) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "unavailable",
			Message: "scheduler is shutting down",
		})

		return
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an internal error occurred",
	})
}

func (h *ScheduleHandler) RegisterRoutes(router *gin.RouterGroup) {
	reminders := router.Group("/reminders/:id")
	{
		reminders.POST("/schedule", h.CreateSchedule)
		reminders.PUT("/schedule", h.ReplaceSchedule)
		reminders.DELETE("/schedule", h.DeleteSchedule)
		reminders.POST("/acknowledgements", h.Acknowledge)
	}

	router.DELETE("/families/:family_id/members/:user_id/follow-ups", h.RemoveMember)
	router.GET("/jobs", h.ListJobs)
}
