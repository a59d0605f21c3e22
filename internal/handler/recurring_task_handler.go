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

type RecurringTaskHandler struct {
	recurringRepo *repository.RecurringTaskRepository
	taskRepo      *repository.TaskRepository
}

func NewRecurringTaskHandler(recurringRepo *repository.RecurringTaskRepository, taskRepo *repository.TaskRepository) *RecurringTaskHandler {
	return &RecurringTaskHandler{recurringRepo: recurringRepo, taskRepo: taskRepo}
}

type RecurringTaskRequest struct {
	TaskID      uint       `json:"task_id" binding:"required"`
	Frequency   string     `json:"frequency" binding:"required,oneof=daily weekly monthly yearly"`
	Interval    int        `json:"interval" binding:"required,min=1,max=365"`
	DaysOfWeek  []int      `json:"days_of_week"`
	DayOfMonth  *int       `json:"day_of_month"`
	NextDueDate time.Time  `json:"next_due_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

func (h *RecurringTaskHandler) List(c *gin.Context) {
	page, err := h.recurringRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recurring tasks"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetDue lists schedules ready for the external scheduler to materialize.
func (h *RecurringTaskHandler) GetDue(c *gin.Context) {
	due, err := h.recurringRepo.GetDue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve due recurring tasks"})
		return
	}
	c.JSON(http.StatusOK, due)
}

func (h *RecurringTaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rt, err := h.recurringRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRecurringTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recurring task"})
		}
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h *RecurringTaskHandler) Create(c *gin.Context) {
	var req RecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
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

	existing, err := h.recurringRepo.GetByTaskID(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing schedule"})
		return
	}
	if existing != nil {
		respondValidation(c, validation.Errors{"task_id": {"The task already has a recurring schedule."}})
		return
	}

	if errs := validation.ValidateRecurring(recurringInput(req), validation.OpCreate, time.Now()); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	rt := recurringFromRequest(req, task.WorkspaceID)
	if err := h.recurringRepo.Create(c.Request.Context(), rt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

func (h *RecurringTaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rt, err := h.recurringRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRecurringTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recurring task"})
		}
		return
	}

	var req RecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if errs := validation.ValidateRecurring(recurringInput(req), validation.OpUpdate, time.Now()); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	rt.Frequency = model.Frequency(req.Frequency)
	rt.Interval = req.Interval
	rt.DaysOfWeek = req.DaysOfWeek
	rt.DayOfMonth = req.DayOfMonth
	rt.NextDueDate = req.NextDueDate
	rt.EndDate = req.EndDate
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}

	if err := h.recurringRepo.Update(c.Request.Context(), rt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (h *RecurringTaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.recurringRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrRecurringTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recurring task"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func recurringInput(req RecurringTaskRequest) validation.RecurringInput {
	return validation.RecurringInput{
		Frequency:   model.Frequency(req.Frequency),
		Interval:    req.Interval,
		DaysOfWeek:  req.DaysOfWeek,
		DayOfMonth:  req.DayOfMonth,
		NextDueDate: req.NextDueDate,
		EndDate:     req.EndDate,
	}
}

func recurringFromRequest(req RecurringTaskRequest, workspaceID uint) *model.RecurringTask {
	rt := &model.RecurringTask{
		WorkspaceID: workspaceID,
		TaskID:      req.TaskID,
		Frequency:   model.Frequency(req.Frequency),
		Interval:    req.Interval,
		DaysOfWeek:  req.DaysOfWeek,
		DayOfMonth:  req.DayOfMonth,
		NextDueDate: req.NextDueDate,
		EndDate:     req.EndDate,
		IsActive:    true,
	}
	if req.IsActive != nil {
		rt.IsActive = *req.IsActive
	}
	return rt
}
