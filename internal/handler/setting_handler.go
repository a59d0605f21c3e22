package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhive/internal/repository"
)

type SettingHandler struct {
	settingRepo *repository.SettingRepository
}

func NewSettingHandler(settingRepo *repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settingRepo: settingRepo}
}

type SettingRequest struct {
	Key         string `json:"key" binding:"required,max=255"`
	Value       string `json:"value" binding:"required"`
	WorkspaceID *uint  `json:"workspace_id"`
}

// Get resolves a key in the workspace scope with fallback to the global row.
// Without a workspace_id query param only the global row is consulted.
func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")

	var (
		setting interface{}
		err     error
	)
	if raw := c.Query("workspace_id"); raw != "" {
		workspaceID, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace_id"})
			return
		}
		setting, err = h.settingRepo.Get(c.Request.Context(), key, uint(workspaceID))
	} else {
		setting, err = h.settingRepo.GetGlobal(c.Request.Context(), key)
	}
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve setting"})
		}
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (h *SettingHandler) Set(c *gin.Context) {
	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	setting, err := h.settingRepo.Set(c.Request.Context(), req.Key, req.Value, req.WorkspaceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}
