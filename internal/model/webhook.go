package model

import (
	"time"
)

type Webhook struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	WorkspaceID uint        `gorm:"not null;index" json:"workspace_id"`
	Name        string      `gorm:"not null" json:"name"`
	URL         string      `gorm:"not null" json:"url"`
	Events      StringSlice `gorm:"type:jsonb" json:"events"`
	Secret      string      `gorm:"not null" json:"-"`
	IsActive    bool        `gorm:"default:true" json:"is_active"`
	RetryCount  int         `gorm:"default:3" json:"retry_count"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// WebhookDelivery records one delivery attempt; retries are driven by an
// external worker polling GetFailedReadyForRetry.
type WebhookDelivery struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	WebhookID     uint           `gorm:"not null;index" json:"webhook_id"`
	Event         string         `gorm:"not null" json:"event"`
	Payload       JSONMap        `gorm:"type:jsonb" json:"payload"`
	Status        DeliveryStatus `gorm:"default:'pending';index" json:"status"`
	ResponseCode  *int           `json:"response_code,omitempty"`
	ResponseBody  string         `json:"response_body,omitempty"`
	Attempts      int            `gorm:"default:0" json:"attempts"`
	NextAttemptAt *time.Time     `json:"next_attempt_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Webhook *Webhook `gorm:"foreignKey:WebhookID" json:"webhook,omitempty"`
}
