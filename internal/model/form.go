package model

import (
	"time"
)

type Form struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"not null;index" json:"workspace_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Fields []FormField `gorm:"foreignKey:FormID" json:"fields,omitempty"`
}

// FormField is one entry of a form's ordered field list. Response data has no
// schema of its own; validity is derived from these rows at submission time.
type FormField struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	FormID   uint        `gorm:"not null;index" json:"form_id"`
	Name     string      `gorm:"not null" json:"name"`
	Label    string      `gorm:"not null" json:"label"`
	Type     FieldType   `gorm:"not null" json:"type"`
	Required bool        `gorm:"default:false" json:"required"`
	Options  StringSlice `gorm:"type:jsonb" json:"options,omitempty"`
	Position int         `gorm:"not null;default:0" json:"position"`
}

type FormResponse struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"not null;index" json:"workspace_id"`
	FormID      uint      `gorm:"not null;index" json:"form_id"`
	Data        JSONMap   `gorm:"type:jsonb" json:"data"`
	SubmittedBy *uint     `json:"submitted_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Form *Form `gorm:"foreignKey:FormID" json:"form,omitempty"`
}
