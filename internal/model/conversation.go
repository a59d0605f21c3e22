package model

import (
	"time"
)

type ConversationType string

const (
	ConversationDirect ConversationType = "direct"
	ConversationGroup  ConversationType = "group"
)

// Conversation member roles.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type Conversation struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	WorkspaceID uint             `gorm:"not null;index" json:"workspace_id"`
	Type        ConversationType `gorm:"not null;default:'group'" json:"type"`
	Title       string           `json:"title"`
	CreatedBy   uint             `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Members []ConversationUser `gorm:"foreignKey:ConversationID" json:"members,omitempty"`
}

type ConversationUser struct {
	ConversationID uint       `gorm:"primaryKey" json:"conversation_id"`
	UserID         uint       `gorm:"primaryKey" json:"user_id"`
	Role           string     `gorm:"not null;default:'member'" json:"role"`
	JoinedAt       time.Time  `gorm:"autoCreateTime" json:"joined_at"`
	LastReadAt     *time.Time `json:"last_read_at,omitempty"`
}

type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	UserID         uint      `gorm:"not null" json:"user_id"`
	Body           string    `gorm:"not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
