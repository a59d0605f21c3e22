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

type TaskHandler struct {
	taskRepo    *repository.TaskRepository
	projectRepo *repository.ProjectRepository
}

func NewTaskHandler(taskRepo *repository.TaskRepository, projectRepo *repository.ProjectRepository) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, projectRepo: projectRepo}
}

type TaskRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Description     string     `json:"description"`
	ProjectID       uint       `json:"project_id" binding:"required"`
	StatusID        *uint      `json:"status_id"`
	AssigneeID      *uint      `json:"assignee_id"`
	ParentID        *uint      `json:"parent_id"`
	Priority        string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Type            string     `json:"type" binding:"omitempty,oneof=task bug feature story epic"`
	StartDate       *time.Time `json:"start_date"`
	DueDate         *time.Time `json:"due_date"`
	EstimatedHours  *float64   `json:"estimated_hours" binding:"omitempty,min=0"`
	ActualHours     *float64   `json:"actual_hours" binding:"omitempty,min=0"`
	StoryPoints     *int       `json:"story_points" binding:"omitempty,min=0"`
	Position        *int       `json:"position"`
	MilestoneIDs    []uint     `json:"milestone_ids"`
	DependencyIDs   []uint     `json:"dependency_ids"`
	DependencyTypes []string   `json:"dependency_types" binding:"omitempty,dive,oneof=blocks relates_to duplicates"`
}

func (h *TaskHandler) List(c *gin.Context) {
	page, err := h.taskRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) GetSubtasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	subtasks, err := h.taskRepo.GetSubtasks(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subtasks"})
		return
	}
	c.JSON(http.StatusOK, subtasks)
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if errs := validateTaskRelations(req, 0); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	task := &model.Task{
		WorkspaceID:    project.WorkspaceID,
		ProjectID:      project.ID,
		Title:          req.Title,
		Description:    req.Description,
		StatusID:       req.StatusID,
		AssigneeID:     req.AssigneeID,
		ReporterID:     userID,
		ParentID:       req.ParentID,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		StoryPoints:    req.StoryPoints,
	}
	if req.Priority != "" {
		task.Priority = model.TaskPriority(req.Priority)
	}
	if req.Type != "" {
		task.Type = model.TaskType(req.Type)
	}
	if req.Position != nil {
		task.Position = *req.Position
	}

	created, err := h.taskRepo.Create(c.Request.Context(), task, repository.TaskRelations{
		MilestoneIDs:    req.MilestoneIDs,
		DependencyIDs:   req.DependencyIDs,
		DependencyTypes: req.DependencyTypes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if errs := validateTaskRelations(req, task.ID); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.StatusID = req.StatusID
	task.AssigneeID = req.AssigneeID
	task.ParentID = req.ParentID
	task.StartDate = req.StartDate
	task.DueDate = req.DueDate
	task.EstimatedHours = req.EstimatedHours
	task.ActualHours = req.ActualHours
	task.StoryPoints = req.StoryPoints
	if req.Priority != "" {
		task.Priority = model.TaskPriority(req.Priority)
	}
	if req.Type != "" {
		task.Type = model.TaskType(req.Type)
	}
	if req.Position != nil {
		task.Position = *req.Position
	}

	updated, err := h.taskRepo.Update(c.Request.Context(), task, repository.TaskRelations{
		MilestoneIDs:    req.MilestoneIDs,
		DependencyIDs:   req.DependencyIDs,
		DependencyTypes: req.DependencyTypes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// validateTaskRelations rejects self-references before the repository is hit,
// so the caller gets a field-attributed error rather than a rollback.
func validateTaskRelations(req TaskRequest, taskID uint) validation.Errors {
	errs := validation.Errors{}
	if taskID != 0 {
		for _, depID := range req.DependencyIDs {
			if depID == taskID {
				errs.Add("dependency_ids", "A task cannot depend on itself.")
				break
			}
		}
		if req.ParentID != nil && *req.ParentID == taskID {
			errs.Add("parent_id", "A task cannot be its own parent.")
		}
	}
	return errs
}
