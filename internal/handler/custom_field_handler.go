package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/internal/authz"
	"taskhive/internal/model"
	"taskhive/internal/repository"
	"taskhive/internal/validation"
)

type CustomFieldHandler struct {
	fieldRepo *repository.CustomFieldRepository
	gate      authz.Gate
}

func NewCustomFieldHandler(fieldRepo *repository.CustomFieldRepository, gate authz.Gate) *CustomFieldHandler {
	return &CustomFieldHandler{fieldRepo: fieldRepo, gate: gate}
}

type CustomFieldRequest struct {
	WorkspaceID uint     `json:"workspace_id" binding:"required"`
	Key         string   `json:"key" binding:"required,max=255"`
	AppliesTo   string   `json:"applies_to" binding:"required,oneof=tasks projects milestones wikis"`
	Label       string   `json:"label" binding:"required,max=255"`
	Type        string   `json:"type" binding:"required,oneof=text number date select multiselect checkbox textarea url email"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
	Position    *int     `json:"position"`
}

type FieldValueRequest struct {
	CustomFieldID uint        `json:"custom_field_id" binding:"required"`
	EntityType    string      `json:"entity_type" binding:"required"`
	EntityID      uint        `json:"entity_id" binding:"required"`
	Value         interface{} `json:"value"`
}

func (h *CustomFieldHandler) List(c *gin.Context) {
	page, err := h.fieldRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve custom fields"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CustomFieldHandler) Create(c *gin.Context) {
	var req CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	field := fieldFromRequest(req)
	if err := h.fieldRepo.Create(c.Request.Context(), field); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, field)
}

func (h *CustomFieldHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	field, err := h.fieldRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomFieldNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Custom field not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve custom field"})
		}
		return
	}

	if !h.gate.CanPerform(c.Request.Context(), userID, "update", field) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This action is unauthorized."})
		return
	}

	var req CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	field.Key = req.Key
	field.AppliesTo = req.AppliesTo
	field.Label = req.Label
	field.Type = model.FieldType(req.Type)
	field.Required = req.Required
	field.Options = req.Options
	if req.Position != nil {
		field.Position = *req.Position
	}

	if err := h.fieldRepo.Update(c.Request.Context(), field); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, field)
}

func (h *CustomFieldHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	field, err := h.fieldRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomFieldNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Custom field not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve custom field"})
		}
		return
	}

	if !h.gate.CanPerform(c.Request.Context(), userID, "delete", field) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This action is unauthorized."})
		return
	}

	if err := h.fieldRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetValue runs the two-phase dynamic validation: load the schema record
// (NotFound when absent), then expand its type into value rules.
func (h *CustomFieldHandler) SetValue(c *gin.Context) {
	var req FieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	field, err := h.fieldRepo.GetByID(c.Request.Context(), req.CustomFieldID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomFieldNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Custom field not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve custom field"})
		}
		return
	}

	if field.AppliesTo != req.EntityType || !repository.KnownEntityType(req.EntityType) {
		respondValidation(c, validation.Errors{"entity_type": {"The selected entity type is invalid."}})
		return
	}

	if errs := validation.ValidateCustomFieldValue(field, req.Value, validation.OpCreate); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	value := &model.CustomFieldValue{
		WorkspaceID:   field.WorkspaceID,
		CustomFieldID: field.ID,
		EntityType:    req.EntityType,
		EntityID:      req.EntityID,
		Value:         stringifyValue(req.Value),
	}
	if err := h.fieldRepo.SetValue(c.Request.Context(), value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, value)
}

func (h *CustomFieldHandler) GetValues(c *gin.Context) {
	entityType := c.Param("entity_type")
	entityID, ok := parseIDParam(c, "entity_id")
	if !ok {
		return
	}

	values, err := h.fieldRepo.GetValues(c.Request.Context(), entityType, entityID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve values"})
		return
	}
	c.JSON(http.StatusOK, values)
}

func (h *CustomFieldHandler) DeleteValue(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.fieldRepo.DeleteValue(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrFieldValueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Custom field value not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete value"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// stringifyValue flattens a validated value for the single text column:
// strings pass through, lists and booleans are JSON-encoded.
func stringifyValue(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

func fieldFromRequest(req CustomFieldRequest) *model.CustomField {
	field := &model.CustomField{
		WorkspaceID: req.WorkspaceID,
		Key:         req.Key,
		AppliesTo:   req.AppliesTo,
		Label:       req.Label,
		Type:        model.FieldType(req.Type),
		Required:    req.Required,
		Options:     req.Options,
	}
	if req.Position != nil {
		field.Position = *req.Position
	}
	return field
}
