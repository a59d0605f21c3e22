package model

import (
	"time"
)

// TimeLog tracks time spent on a task. A log with a nil EndedAt is a running
// timer; a user may have at most one at a time.
type TimeLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"not null;index" json:"workspace_id"`
	TaskID      uint       `gorm:"not null;index" json:"task_id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Duration    int64      `gorm:"default:0" json:"duration"` // seconds
	Description string     `json:"description"`
	Billable    bool       `gorm:"default:false" json:"billable"`
	HourlyRate  *float64   `json:"hourly_rate,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
