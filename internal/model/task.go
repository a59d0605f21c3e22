package model

import (
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type TaskType string

const (
	TypeTask    TaskType = "task"
	TypeBug     TaskType = "bug"
	TypeFeature TaskType = "feature"
	TypeStory   TaskType = "story"
	TypeEpic    TaskType = "epic"
)

// Dependency edge kinds.
const (
	DepBlocks     = "blocks"
	DepRelatesTo  = "relates_to"
	DepDuplicates = "duplicates"
)

type Task struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	WorkspaceID    uint         `gorm:"not null;index" json:"workspace_id"`
	ProjectID      uint         `gorm:"not null;index" json:"project_id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `json:"description"`
	StatusID       *uint        `json:"status_id,omitempty"`
	AssigneeID     *uint        `json:"assignee_id,omitempty"`
	ReporterID     uint         `gorm:"not null" json:"reporter_id"`
	ParentID       *uint        `gorm:"index" json:"parent_id,omitempty"`
	Priority       TaskPriority `gorm:"default:'medium'" json:"priority"`
	Type           TaskType     `gorm:"default:'task'" json:"type"`
	StartDate      *time.Time   `json:"start_date,omitempty"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
	ActualHours    *float64     `json:"actual_hours,omitempty"`
	StoryPoints    *int         `json:"story_points,omitempty"`
	Position       int          `gorm:"not null;default:0" json:"position"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	Status       *Status          `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Assignee     *User            `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Reporter     *User            `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`
	Parent       *Task            `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Subtasks     []Task           `gorm:"foreignKey:ParentID" json:"subtasks,omitempty"`
	Milestones   []Milestone      `gorm:"many2many:task_milestones" json:"milestones,omitempty"`
	Dependencies []TaskDependency `gorm:"foreignKey:TaskID" json:"dependencies,omitempty"`
}

// TaskDependency is a directed edge between two tasks carrying its kind.
type TaskDependency struct {
	TaskID       uint   `gorm:"primaryKey" json:"task_id"`
	DependencyID uint   `gorm:"primaryKey" json:"dependency_id"`
	DepType      string `gorm:"column:dep_type;not null;default:'blocks'" json:"dep_type"`
}

type MilestoneStatus string

const (
	MilestonePlanned   MilestoneStatus = "planned"
	MilestoneActive    MilestoneStatus = "active"
	MilestoneCompleted MilestoneStatus = "completed"
)

type Milestone struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	WorkspaceID uint            `gorm:"not null;index" json:"workspace_id"`
	ProjectID   uint            `gorm:"not null;index" json:"project_id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Status      MilestoneStatus `gorm:"default:'planned'" json:"status"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
