package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhive/internal/model"
	"taskhive/internal/repository"
	"taskhive/internal/storage"
	"taskhive/internal/validation"
)

const maxAttachmentSize = 32 << 20

type AttachmentHandler struct {
	attachmentRepo *repository.AttachmentRepository
	blobs          storage.BlobStore
}

func NewAttachmentHandler(attachmentRepo *repository.AttachmentRepository, blobs storage.BlobStore) *AttachmentHandler {
	return &AttachmentHandler{attachmentRepo: attachmentRepo, blobs: blobs}
}

func (h *AttachmentHandler) List(c *gin.Context) {
	page, err := h.attachmentRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachments"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Upload stores a multipart file under a generated path and records the row.
// The owning entity comes from form fields, the blob from the "file" part.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := strconv.ParseUint(c.PostForm("workspace_id"), 10, 64)
	if err != nil {
		respondValidation(c, validation.Errors{"workspace_id": {"The workspace id field is required."}})
		return
	}
	entityType := c.PostForm("entity_type")
	entityID, err := strconv.ParseUint(c.PostForm("entity_id"), 10, 64)
	if err != nil || !repository.KnownEntityType(entityType) {
		respondValidation(c, validation.Errors{"entity_type": {"The selected entity type is invalid."}})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, validation.Errors{"file": {"The file field is required."}})
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		respondValidation(c, validation.Errors{"file": {"The file may not be greater than 32 megabytes."}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	path := fmt.Sprintf("attachments/%d/%s%s", workspaceID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	if err := h.blobs.Put(c.Request.Context(), path, file, fileHeader.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	att := &model.Attachment{
		WorkspaceID: uint(workspaceID),
		EntityType:  entityType,
		EntityID:    uint(entityID),
		FileName:    fileHeader.Filename,
		Disk:        "minio",
		Path:        path,
		Size:        fileHeader.Size,
		ContentType: contentType,
		UploadedBy:  userID,
	}
	if err := h.attachmentRepo.Create(c.Request.Context(), att); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, att)
}

func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	att, err := h.attachmentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAttachmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachment"})
		}
		return
	}

	blob, err := h.blobs.Get(c.Request.Context(), att.Path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer blob.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.FileName))
	c.Header("Content-Type", att.ContentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, blob)
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	att, err := h.attachmentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrAttachmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachment"})
		}
		return
	}

	if err := h.attachmentRepo.Delete(c.Request.Context(), att); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
