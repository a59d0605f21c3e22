package model

import (
	"time"
)

type Frequency string

const (
	FreqDaily   Frequency = "daily"
	FreqWeekly  Frequency = "weekly"
	FreqMonthly Frequency = "monthly"
	FreqYearly  Frequency = "yearly"
)

// RecurringTask describes a repetition schedule for exactly one task.
// An external scheduler discovers work through RecurringTaskRepository.GetDue.
type RecurringTask struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkspaceID uint       `gorm:"not null;index" json:"workspace_id"`
	TaskID      uint       `gorm:"uniqueIndex;not null" json:"task_id"`
	Frequency   Frequency  `gorm:"not null" json:"frequency"`
	Interval    int        `gorm:"not null;default:1" json:"interval"`
	DaysOfWeek  IntSlice   `gorm:"type:jsonb" json:"days_of_week,omitempty"`
	DayOfMonth  *int       `json:"day_of_month,omitempty"`
	NextDueDate time.Time  `gorm:"not null;index" json:"next_due_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
