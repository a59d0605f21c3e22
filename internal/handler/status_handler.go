package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/internal/model"
	"taskhive/internal/repository"
)

type StatusHandler struct {
	statusRepo *repository.StatusRepository
}

func NewStatusHandler(statusRepo *repository.StatusRepository) *StatusHandler {
	return &StatusHandler{statusRepo: statusRepo}
}

type StatusRequest struct {
	WorkspaceID uint   `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=255"`
	Color       string `json:"color" binding:"omitempty,max=32"`
	IsDefault   *bool  `json:"is_default"`
	Position    *int   `json:"position"`
}

type PipelineRequest struct {
	WorkspaceID uint   `json:"workspace_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=255"`
	IsDefault   *bool  `json:"is_default"`
}

type ReorderRequest struct {
	StatusIDs []uint `json:"status_ids" binding:"required,min=1"`
}

func (h *StatusHandler) List(c *gin.Context) {
	page, err := h.statusRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statuses"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StatusHandler) Create(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	status := &model.Status{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Color:       req.Color,
	}
	if req.IsDefault != nil {
		status.IsDefault = *req.IsDefault
	}
	if req.Position != nil {
		status.Position = *req.Position
	}

	if err := h.statusRepo.Create(c.Request.Context(), status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

func (h *StatusHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.statusRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Status not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve status"})
		}
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	status.Name = req.Name
	status.Color = req.Color
	if req.IsDefault != nil {
		status.IsDefault = *req.IsDefault
	}
	if req.Position != nil {
		status.Position = *req.Position
	}

	if err := h.statusRepo.Update(c.Request.Context(), status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *StatusHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.statusRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Status not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete status"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StatusHandler) ListPipelines(c *gin.Context) {
	page, err := h.statusRepo.ListPipelines(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pipelines"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *StatusHandler) CreatePipeline(c *gin.Context) {
	var req PipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	pipeline := &model.Pipeline{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
	}
	if req.IsDefault != nil {
		pipeline.IsDefault = *req.IsDefault
	}

	if err := h.statusRepo.CreatePipeline(c.Request.Context(), pipeline); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pipeline)
}

func (h *StatusHandler) GetPipelineStatuses(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	statuses, err := h.statusRepo.GetPipelineStatuses(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pipeline statuses"})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *StatusHandler) ReorderPipeline(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.statusRepo.GetPipeline(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPipelineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pipeline not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pipeline"})
		}
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if err := h.statusRepo.ReorderPipeline(c.Request.Context(), id, req.StatusIDs); err != nil {
		respondError(c, err)
		return
	}

	statuses, err := h.statusRepo.GetPipelineStatuses(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pipeline statuses"})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *StatusHandler) DeletePipeline(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.statusRepo.DeletePipeline(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPipelineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pipeline not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pipeline"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
