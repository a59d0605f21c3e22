package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhive/internal/model"
	"taskhive/internal/repository"
	"taskhive/internal/validation"
)

type TimeLogHandler struct {
	timeLogRepo *repository.TimeLogRepository
	taskRepo    *repository.TaskRepository
}

func NewTimeLogHandler(timeLogRepo *repository.TimeLogRepository, taskRepo *repository.TaskRepository) *TimeLogHandler {
	return &TimeLogHandler{timeLogRepo: timeLogRepo, taskRepo: taskRepo}
}

type TimeLogRequest struct {
	TaskID      uint       `json:"task_id" binding:"required"`
	StartedAt   time.Time  `json:"started_at" binding:"required"`
	EndedAt     *time.Time `json:"ended_at"`
	Description string     `json:"description"`
	Billable    bool       `json:"billable"`
	HourlyRate  *float64   `json:"hourly_rate" binding:"omitempty,min=0"`
}

func (h *TimeLogHandler) List(c *gin.Context) {
	page, err := h.timeLogRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time logs"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TimeLogHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	log, err := h.timeLogRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTimeLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time log"})
		}
		return
	}
	c.JSON(http.StatusOK, log)
}

// GetRunning returns the caller's running timer, if any.
func (h *TimeLogHandler) GetRunning(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	log, err := h.timeLogRepo.FindRunning(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve running time log"})
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No running time log"})
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *TimeLogHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if errs := validateTimeLog(req); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), req.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	log := &model.TimeLog{
		WorkspaceID: task.WorkspaceID,
		TaskID:      task.ID,
		UserID:      userID,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
		Description: req.Description,
		Billable:    req.Billable,
		HourlyRate:  req.HourlyRate,
	}
	if err := h.timeLogRepo.Create(c.Request.Context(), log); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *TimeLogHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	log, err := h.timeLogRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTimeLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve time log"})
		}
		return
	}
	if log.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own time logs"})
		return
	}

	var req TimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if errs := validateTimeLog(req); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	log.StartedAt = req.StartedAt
	log.EndedAt = req.EndedAt
	log.Description = req.Description
	log.Billable = req.Billable
	log.HourlyRate = req.HourlyRate

	if err := h.timeLogRepo.Update(c.Request.Context(), log); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// Stop ends the caller's running timer.
func (h *TimeLogHandler) Stop(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	log, err := h.timeLogRepo.FindRunning(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve running time log"})
		return
	}
	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No running time log"})
		return
	}

	now := time.Now()
	log.EndedAt = &now
	if err := h.timeLogRepo.Update(c.Request.Context(), log); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *TimeLogHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.timeLogRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTimeLogNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete time log"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func validateTimeLog(req TimeLogRequest) validation.Errors {
	errs := validation.Errors{}
	if req.EndedAt != nil && !req.EndedAt.After(req.StartedAt) {
		errs.Add("ended_at", "The ended at must be after started at.")
	}
	if req.Billable && req.HourlyRate == nil {
		errs.Add("hourly_rate", "The hourly rate field is required when billable is true.")
	}
	return errs
}
