package model

import (
	"time"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
	ProjectDraft    ProjectStatus = "draft"
)

type Project struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	WorkspaceID uint          `gorm:"not null;index" json:"workspace_id"`
	Name        string        `gorm:"not null" json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `gorm:"default:'active'" json:"status"`
	PipelineID  *uint         `json:"pipeline_id,omitempty"`
	OwnerID     uint          `gorm:"not null" json:"owner_id"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	EndDate     *time.Time    `json:"end_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Pipeline  *Pipeline  `gorm:"foreignKey:PipelineID" json:"pipeline,omitempty"`
	Members   []User     `gorm:"many2many:project_users" json:"members,omitempty"`
}
