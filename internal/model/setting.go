package model

import (
	"time"
)

// Setting holds one key/value pair. A nil WorkspaceID marks the global row;
// workspace lookups fall back to it.
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID *uint     `gorm:"index:idx_setting_ws_key,unique" json:"workspace_id,omitempty"`
	Key         string    `gorm:"not null;index:idx_setting_ws_key,unique" json:"key"`
	Value       string    `json:"value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
