package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/internal/model"
	"taskhive/internal/repository"
	"taskhive/internal/validation"
)

type WikiHandler struct {
	wikiRepo *repository.WikiRepository
}

func NewWikiHandler(wikiRepo *repository.WikiRepository) *WikiHandler {
	return &WikiHandler{wikiRepo: wikiRepo}
}

type WikiCreateRequest struct {
	WorkspaceID uint     `json:"workspace_id" binding:"required"`
	Title       string   `json:"title" binding:"required,max=255"`
	Slug        string   `json:"slug" binding:"required,max=255"`
	Content     string   `json:"content"`
	ParentID    *uint    `json:"parent_id"`
	IsPublished bool     `json:"is_published"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

type WikiUpdateRequest struct {
	Title           *string  `json:"title" binding:"omitempty,max=255"`
	Content         *string  `json:"content"`
	ParentID        *uint    `json:"parent_id"`
	ClearParent     bool     `json:"clear_parent"`
	IsPublished     *bool    `json:"is_published"`
	Tags            []string `json:"tags"`
	Description     *string  `json:"description"`
	RevisionSummary string   `json:"revision_summary"`
}

func (h *WikiHandler) List(c *gin.Context) {
	page, err := h.wikiRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wikis"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *WikiHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	wiki, err := h.wikiRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWikiNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wiki not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wiki"})
		}
		return
	}
	c.JSON(http.StatusOK, wiki)
}

func (h *WikiHandler) GetRevisions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	revs, err := h.wikiRepo.GetRevisions(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve revisions"})
		return
	}
	c.JSON(http.StatusOK, revs)
}

func (h *WikiHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req WikiCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if !validation.ValidSlug(req.Slug) {
		respondValidation(c, validation.Errors{"slug": {"The slug must contain only lowercase letters, numbers and hyphens."}})
		return
	}

	taken, err := h.wikiRepo.SlugTaken(c.Request.Context(), req.WorkspaceID, req.Slug, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check slug"})
		return
	}
	if taken {
		respondValidation(c, validation.Errors{"slug": {"The slug has already been taken."}})
		return
	}

	if req.ParentID != nil {
		parent, err := h.wikiRepo.GetByID(c.Request.Context(), *req.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrWikiNotFound) {
				respondValidation(c, validation.Errors{"parent_id": {"The selected parent_id is invalid."}})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check parent"})
			}
			return
		}
		if parent.WorkspaceID != req.WorkspaceID {
			respondValidation(c, validation.Errors{"parent_id": {"The selected parent_id is invalid."}})
			return
		}
	}

	wiki := &model.Wiki{
		WorkspaceID: req.WorkspaceID,
		Title:       req.Title,
		Slug:        req.Slug,
		Content:     req.Content,
		ParentID:    req.ParentID,
		IsPublished: req.IsPublished,
		Tags:        req.Tags,
		Description: req.Description,
		CreatedBy:   userID,
	}
	created, err := h.wikiRepo.Create(c.Request.Context(), wiki)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WikiHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	wiki, err := h.wikiRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWikiNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wiki not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wiki"})
		}
		return
	}

	var req WikiUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	updated, err := h.wikiRepo.Update(c.Request.Context(), wiki, repository.WikiUpdate{
		Title:           req.Title,
		Content:         req.Content,
		ParentID:        req.ParentID,
		ClearParent:     req.ClearParent,
		IsPublished:     req.IsPublished,
		Tags:            req.Tags,
		Description:     req.Description,
		RevisionSummary: req.RevisionSummary,
		AuthorID:        userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WikiHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	wiki, err := h.wikiRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrWikiNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wiki not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wiki"})
		}
		return
	}

	if err := h.wikiRepo.Delete(c.Request.Context(), wiki); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
