package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskhive/internal/model"
)

// EntityRef is the tagged pair used by polymorphic attachments (custom field
// values, attachments): a type tag plus a numeric id.
type EntityRef struct {
	Type string
	ID   uint
}

// entityModels maps type tags to their table models. Adding a new attachable
// entity means adding a row here; no reflection-based dispatch.
var entityModels = map[string]func() interface{}{
	"tasks":      func() interface{} { return &model.Task{} },
	"projects":   func() interface{} { return &model.Project{} },
	"milestones": func() interface{} { return &model.Milestone{} },
	"wikis":      func() interface{} { return &model.Wiki{} },
}

// KnownEntityType reports whether the tag is registered.
func KnownEntityType(tag string) bool {
	_, ok := entityModels[tag]
	return ok
}

// ResolveEntity checks that the referenced row exists. Used before attaching
// polymorphic children.
func ResolveEntity(ctx context.Context, db *gorm.DB, ref EntityRef) error {
	factory, ok := entityModels[ref.Type]
	if !ok {
		return fmt.Errorf("unknown entity type %q", ref.Type)
	}
	var count int64
	if err := db.WithContext(ctx).Model(factory()).Where("id = ?", ref.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %d not found", ref.Type, ref.ID)
	}
	return nil
}
