package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/internal/model"
	"taskhive/internal/repository"
)

type ConversationHandler struct {
	conversationRepo *repository.ConversationRepository
	messageRepo      *repository.MessageRepository
}

func NewConversationHandler(conversationRepo *repository.ConversationRepository, messageRepo *repository.MessageRepository) *ConversationHandler {
	return &ConversationHandler{conversationRepo: conversationRepo, messageRepo: messageRepo}
}

type ConversationRequest struct {
	WorkspaceID uint   `json:"workspace_id" binding:"required"`
	Title       string `json:"title" binding:"max=255"`
	MemberIDs   []uint `json:"member_ids"`
}

type DirectConversationRequest struct {
	WorkspaceID uint `json:"workspace_id" binding:"required"`
	UserID      uint `json:"user_id" binding:"required"`
}

type ConversationMembersRequest struct {
	UserIDs []uint `json:"user_ids" binding:"required,min=1"`
}

type MessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *ConversationHandler) List(c *gin.Context) {
	page, err := h.conversationRepo.List(c.Request.Context(), queryParams(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ConversationHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	conv, err := h.conversationRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversation"})
		}
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	conv := &model.Conversation{
		WorkspaceID: req.WorkspaceID,
		Type:        model.ConversationGroup,
		Title:       req.Title,
		CreatedBy:   userID,
	}
	created, err := h.conversationRepo.Create(c.Request.Context(), conv, req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Direct finds or creates the one direct conversation between the caller and
// the given user. Calling it twice returns the same conversation.
func (h *ConversationHandler) Direct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req DirectConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	conv, err := h.conversationRepo.FindOrCreateDirect(c.Request.Context(), req.WorkspaceID, userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) AddUsers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ConversationMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if err := h.conversationRepo.AddUsers(c.Request.Context(), id, req.UserIDs); err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConversationHandler) RemoveUsers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ConversationMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	if err := h.conversationRepo.RemoveUsers(c.Request.Context(), id, req.UserIDs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConversationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.conversationRepo.MarkRead(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConversationHandler) ListMessages(c *gin.Context) {
	if _, ok := parseIDParam(c, "id"); !ok {
		return
	}

	params := queryParams(c)
	params["conversation_id"] = c.Param("id")

	page, err := h.messageRepo.List(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBinding(c, err)
		return
	}

	msg := &model.Message{
		ConversationID: id,
		UserID:         userID,
		Body:           req.Body,
	}
	if err := h.messageRepo.Create(c.Request.Context(), msg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
