package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhive/internal/authz"
	"taskhive/internal/model"
	"taskhive/internal/repository"
)

type WebhookHandler struct {
	webhookRepo  *repository.WebhookRepository
	deliveryRepo *repository.WebhookDeliveryRepository
	gate         authz.Gate
}

func NewWebhookHandler(webhookRepo *repository.WebhookRepository, deliveryRepo *repository.WebhookDeliveryRepository, gate authz.Gate) *WebhookHandler {
	return &WebhookHandler{webhookRepo: webhookRepo, deliveryRepo: deliveryRepo, gate: gate}
}

type WebhookRequest struct {
	WorkspaceID uint     `json:"workspace_id" binding:"required"`
	Name        string   `json:"name" binding:"required,max=255"`
	URL         string   `json:"url" binding:"required,url"`
	Events      []string `json:"events" binding:"required,min=1"`
	IsActive    *bool    `json:"is_active"`
	RetryCount  *int     `json:"retry_count" binding:"omitempty,min=0,max=10"`
}

func (h *WebhookHandler) List(c *gin.Context) {
	page, err := h.webhookRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve webhooks"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *WebhookHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	hook, err := h.webhookRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWebhookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Webhook not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve webhook"})
		}
		return
	}
	c.JSON(http.StatusOK, hook)
}

func (h *WebhookHandler) Create(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	hook := &model.Webhook{
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		URL:         req.URL,
		Events:      req.Events,
		Secret:      uuid.NewString(),
		IsActive:    true,
		RetryCount:  3,
	}
	if req.IsActive != nil {
		hook.IsActive = *req.IsActive
	}
	if req.RetryCount != nil {
		hook.RetryCount = *req.RetryCount
	}

	if err := h.webhookRepo.Create(c.Request.Context(), hook); err != nil {
		respondError(c, err)
		return
	}
	// The secret is returned once, on creation only.
	c.JSON(http.StatusCreated, gin.H{"webhook": hook, "secret": hook.Secret})
}

func (h *WebhookHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	hook, err := h.webhookRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWebhookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Webhook not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve webhook"})
		}
		return
	}

	if !h.gate.CanPerform(c.Request.Context(), userID, "update", hook) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This action is unauthorized."})
		return
	}

	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	hook.Name = req.Name
	hook.URL = req.URL
	hook.Events = req.Events
	if req.IsActive != nil {
		hook.IsActive = *req.IsActive
	}
	if req.RetryCount != nil {
		hook.RetryCount = *req.RetryCount
	}

	if err := h.webhookRepo.Update(c.Request.Context(), hook); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hook)
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	hook, err := h.webhookRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWebhookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Webhook not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve webhook"})
		}
		return
	}

	if !h.gate.CanPerform(c.Request.Context(), userID, "delete", hook) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This action is unauthorized."})
		return
	}

	if err := h.webhookRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WebhookHandler) ListDeliveries(c *gin.Context) {
	if _, ok := parseIDParam(c, "id"); !ok {
		return
	}

	params := queryParams(c)
	params["webhook_id"] = c.Param("id")

	page, err := h.deliveryRepo.List(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve deliveries"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListRetryable exposes the retry queue to the external delivery worker.
func (h *WebhookHandler) ListRetryable(c *gin.Context) {
	deliveries, err := h.deliveryRepo.GetFailedReadyForRetry(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve retryable deliveries"})
		return
	}
	c.JSON(http.StatusOK, deliveries)
}
