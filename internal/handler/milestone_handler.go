package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhive/internal/model"
	"taskhive/internal/repository"
)

type MilestoneHandler struct {
	milestoneRepo *repository.MilestoneRepository
}

func NewMilestoneHandler(milestoneRepo *repository.MilestoneRepository) *MilestoneHandler {
	return &MilestoneHandler{milestoneRepo: milestoneRepo}
}

type MilestoneRequest struct {
	WorkspaceID uint       `json:"workspace_id" binding:"required"`
	ProjectID   uint       `json:"project_id" binding:"required"`
	Name        string     `json:"name" binding:"required,max=255"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=planned active completed"`
	DueDate     *time.Time `json:"due_date"`
	Position    *int       `json:"position"`
}

func (h *MilestoneHandler) List(c *gin.Context) {
	page, err := h.milestoneRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestones"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MilestoneHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	milestone, err := h.milestoneRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestone"})
		}
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func (h *MilestoneHandler) Create(c *gin.Context) {
	var req MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	milestone := &model.Milestone{
		WorkspaceID: req.WorkspaceID,
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Status:      model.MilestonePlanned,
		DueDate:     req.DueDate,
	}
	if req.Status != "" {
		milestone.Status = model.MilestoneStatus(req.Status)
	}
	if req.Position != nil {
		milestone.Position = *req.Position
	}

	if err := h.milestoneRepo.Create(c.Request.Context(), milestone); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, milestone)
}

func (h *MilestoneHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	milestone, err := h.milestoneRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestone"})
		}
		return
	}

	var req MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	milestone.Name = req.Name
	milestone.Description = req.Description
	milestone.DueDate = req.DueDate
	if req.Status != "" {
		milestone.Status = model.MilestoneStatus(req.Status)
	}
	if req.Position != nil {
		milestone.Position = *req.Position
	}

	if err := h.milestoneRepo.Update(c.Request.Context(), milestone); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

func (h *MilestoneHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.milestoneRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete milestone"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
