package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/apperr"
	"taskhive/internal/model"
	"taskhive/internal/query"
)

type CustomFieldRepository struct {
	db *gorm.DB
}

func NewCustomFieldRepository(db *gorm.DB) *CustomFieldRepository {
	return &CustomFieldRepository{db: db}
}

var customFieldFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "applies_to", "type"},
	Search: []string{"key", "label"},
	Order:  "position ASC, created_at DESC",
}

func (r *CustomFieldRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.CustomField], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.CustomField{}), customFieldFilterSpec, params)
	return query.Paginate[model.CustomField](db, params)
}

func (r *CustomFieldRepository) GetByID(ctx context.Context, id uint) (*model.CustomField, error) {
	var field model.CustomField
	result := r.db.WithContext(ctx).First(&field, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCustomFieldNotFound
		}
		return nil, result.Error
	}
	return &field, nil
}

// Create persists the field after checking key uniqueness. The uniqueness
// scope is (workspace_id, applies_to); the same key may exist for another
// entity kind or workspace.
func (r *CustomFieldRepository) Create(ctx context.Context, field *model.CustomField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureKeyAvailable(tx, field, 0); err != nil {
			return err
		}
		return tx.Create(field).Error
	})
}

func (r *CustomFieldRepository) Update(ctx context.Context, field *model.CustomField) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureKeyAvailable(tx, field, field.ID); err != nil {
			return err
		}
		result := tx.Save(field)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCustomFieldNotFound
		}
		return nil
	})
}

func (r *CustomFieldRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("custom_field_id = ?", id).Delete(&model.CustomFieldValue{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.CustomField{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCustomFieldNotFound
		}
		return nil
	})
}

// GetValues returns the values attached to one entity.
func (r *CustomFieldRepository) GetValues(ctx context.Context, entityType string, entityID uint) ([]model.CustomFieldValue, error) {
	var values []model.CustomFieldValue
	result := r.db.WithContext(ctx).
		Preload("CustomField").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Find(&values)
	if result.Error != nil {
		return nil, result.Error
	}
	return values, nil
}

// SetValue upserts the value of one field on one entity.
func (r *CustomFieldRepository) SetValue(ctx context.Context, value *model.CustomFieldValue) error {
	var existing model.CustomFieldValue
	err := r.db.WithContext(ctx).
		Where("custom_field_id = ? AND entity_type = ? AND entity_id = ?",
			value.CustomFieldID, value.EntityType, value.EntityID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(value).Error
		}
		return err
	}
	existing.Value = value.Value
	*value = existing
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *CustomFieldRepository) DeleteValue(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.CustomFieldValue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFieldValueNotFound
	}
	return nil
}

func ensureKeyAvailable(tx *gorm.DB, field *model.CustomField, excludeID uint) error {
	var count int64
	db := tx.Model(&model.CustomField{}).
		Where("workspace_id = ? AND applies_to = ? AND key = ?", field.WorkspaceID, field.AppliesTo, field.Key)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation(map[string][]string{
			"key": {"The key has already been taken."},
		})
	}
	return nil
}
