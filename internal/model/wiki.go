package model

import (
	"time"
)

type Wiki struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	WorkspaceID uint        `gorm:"not null;index:idx_wiki_ws_slug,unique" json:"workspace_id"`
	Title       string      `gorm:"not null" json:"title"`
	Slug        string      `gorm:"not null;index:idx_wiki_ws_slug,unique" json:"slug"`
	Content     string      `json:"content"`
	ParentID    *uint       `gorm:"index" json:"parent_id,omitempty"`
	IsPublished bool        `gorm:"default:false" json:"is_published"`
	Tags        StringSlice `gorm:"type:jsonb" json:"tags,omitempty"`
	Description string      `json:"description"`
	CreatedBy   uint        `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Parent    *Wiki          `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children  []Wiki         `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Revisions []WikiRevision `gorm:"foreignKey:WikiID" json:"revisions,omitempty"`
}

// WikiRevision is an append-only snapshot; rows are written only when the
// revision service judges the change significant.
type WikiRevision struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WikiID    uint      `gorm:"not null;index" json:"wiki_id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
