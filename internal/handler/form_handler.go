package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/internal/model"
	"taskhive/internal/repository"
	"taskhive/internal/validation"
)

type FormHandler struct {
	formRepo *repository.FormRepository
}

func NewFormHandler(formRepo *repository.FormRepository) *FormHandler {
	return &FormHandler{formRepo: formRepo}
}

type FormFieldRequest struct {
	Name     string   `json:"name" binding:"required,max=255"`
	Label    string   `json:"label" binding:"required,max=255"`
	Type     string   `json:"type" binding:"required,oneof=text number date select multiselect checkbox textarea url email"`
	Required bool     `json:"required"`
	Options  []string `json:"options"`
}

type FormRequest struct {
	WorkspaceID uint               `json:"workspace_id" binding:"required"`
	Title       string             `json:"title" binding:"required,max=255"`
	Description string             `json:"description"`
	IsActive    *bool              `json:"is_active"`
	Fields      []FormFieldRequest `json:"fields" binding:"omitempty,dive"`
}

type FormResponseRequest struct {
	Data map[string]interface{} `json:"data" binding:"required"`
}

func (h *FormHandler) List(c *gin.Context) {
	page, err := h.formRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve forms"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *FormHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	form, err := h.formRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve form"})
		}
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	form := &model.Form{
		WorkspaceID: req.WorkspaceID,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   userID,
	}
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}

	created, err := h.formRepo.Create(c.Request.Context(), form, fieldsFromRequest(req.Fields))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *FormHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form, err := h.formRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve form"})
		}
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	form.Title = req.Title
	form.Description = req.Description
	if req.IsActive != nil {
		form.IsActive = *req.IsActive
	}

	var fields []model.FormField
	if req.Fields != nil {
		fields = fieldsFromRequest(req.Fields)
	}
	updated, err := h.formRepo.Update(c.Request.Context(), form, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *FormHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.formRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete form"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitResponse validates the data map against the parent form's field list.
// A missing form is NotFound, not a validation failure: rules cannot be built
// without the schema.
func (h *FormHandler) SubmitResponse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	formID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	form, err := h.formRepo.GetByID(c.Request.Context(), formID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve form"})
		}
		return
	}

	var req FormResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if errs := validation.ValidateFormData(form, req.Data, validation.OpCreate); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	resp := &model.FormResponse{
		WorkspaceID: form.WorkspaceID,
		FormID:      form.ID,
		Data:        req.Data,
		SubmittedBy: &userID,
	}
	if err := h.formRepo.CreateResponse(c.Request.Context(), resp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FormHandler) UpdateResponse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.formRepo.GetResponse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFormResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form response not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve form response"})
		}
		return
	}

	form, err := h.formRepo.GetByID(c.Request.Context(), resp.FormID)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve form"})
		}
		return
	}

	var req FormResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if errs := validation.ValidateFormData(form, req.Data, validation.OpUpdate); !errs.Empty() {
		respondValidation(c, errs)
		return
	}

	resp.Data = req.Data
	if err := h.formRepo.UpdateResponse(c.Request.Context(), resp); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FormHandler) ListResponses(c *gin.Context) {
	if _, ok := parseIDParam(c, "id"); !ok {
		return
	}

	params := queryParams(c)
	params["form_id"] = c.Param("id")

	page, err := h.formRepo.ListResponses(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve form responses"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func fieldsFromRequest(reqs []FormFieldRequest) []model.FormField {
	fields := make([]model.FormField, len(reqs))
	for i, f := range reqs {
		fields[i] = model.FormField{
			Name:     f.Name,
			Label:    f.Label,
			Type:     model.FieldType(f.Type),
			Required: f.Required,
			Options:  f.Options,
		}
	}
	return fields
}
