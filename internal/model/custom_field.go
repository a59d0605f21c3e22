package model

import (
	"time"
)

// FieldType enumerates the value kinds a form field or custom field may hold.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldNumber      FieldType = "number"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
	FieldCheckbox    FieldType = "checkbox"
	FieldTextarea    FieldType = "textarea"
	FieldURL         FieldType = "url"
	FieldEmail       FieldType = "email"
)

// CustomField defines an extra attribute attachable to one entity kind.
// Key uniqueness is scoped by (workspace_id, applies_to).
type CustomField struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	WorkspaceID uint        `gorm:"not null;index:idx_cf_ws_key,unique" json:"workspace_id"`
	Key         string      `gorm:"not null;index:idx_cf_ws_key,unique" json:"key"`
	AppliesTo   string      `gorm:"not null;index:idx_cf_ws_key,unique" json:"applies_to"`
	Label       string      `gorm:"not null" json:"label"`
	Type        FieldType   `gorm:"not null" json:"type"`
	Required    bool        `gorm:"default:false" json:"required"`
	Options     StringSlice `gorm:"type:jsonb" json:"options,omitempty"`
	Position    int         `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CustomFieldValue attaches one value to any entity via (entity_type, entity_id).
type CustomFieldValue struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID   uint      `gorm:"not null;index" json:"workspace_id"`
	CustomFieldID uint      `gorm:"not null;index" json:"custom_field_id"`
	EntityType    string    `gorm:"not null;index:idx_cfv_entity" json:"entity_type"`
	EntityID      uint      `gorm:"not null;index:idx_cfv_entity" json:"entity_id"`
	Value         string    `json:"value"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	CustomField *CustomField `gorm:"foreignKey:CustomFieldID" json:"custom_field,omitempty"`
}
