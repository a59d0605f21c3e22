package model

import (
	"time"
)

// Attachment references a stored blob, polymorphically linked to its owner
// entity via (entity_type, entity_id).
type Attachment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"not null;index" json:"workspace_id"`
	EntityType  string    `gorm:"not null;index:idx_att_entity" json:"entity_type"`
	EntityID    uint      `gorm:"not null;index:idx_att_entity" json:"entity_id"`
	FileName    string    `gorm:"not null" json:"file_name"`
	Disk        string    `gorm:"not null;default:'minio'" json:"disk"`
	Path        string    `gorm:"not null" json:"path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedBy  uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
