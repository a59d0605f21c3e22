package model

import (
	"time"
)

// Status is one step a task can occupy; statuses are grouped into ordered
// pipelines assignable to a project.
type Status struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"not null;index" json:"workspace_id"`
	Name        string    `gorm:"not null" json:"name"`
	Color       string    `json:"color"`
	IsDefault   bool      `gorm:"default:false" json:"is_default"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Pipeline struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"not null;index" json:"workspace_id"`
	Name        string    `gorm:"not null" json:"name"`
	IsDefault   bool      `gorm:"default:false" json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Statuses []Status `gorm:"many2many:pipeline_statuses" json:"statuses,omitempty"`
}

// PipelineStatus is the join row carrying the per-pipeline ordering.
type PipelineStatus struct {
	PipelineID uint `gorm:"primaryKey" json:"pipeline_id"`
	StatusID   uint `gorm:"primaryKey" json:"status_id"`
	Position   int  `gorm:"not null;default:0" json:"position"`
}
