package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/model"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get looks the key up in the workspace scope first, then falls back to the
// global row (nil workspace_id). Two explicit lookups, no nullable overload.
func (r *SettingRepository) Get(ctx context.Context, key string, workspaceID uint) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).
		First(&setting, "key = ? AND workspace_id = ?", key, workspaceID).Error
	if err == nil {
		return &setting, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return r.GetGlobal(ctx, key)
}

func (r *SettingRepository) GetGlobal(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.WithContext(ctx).
		First(&setting, "key = ? AND workspace_id IS NULL", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return &setting, nil
}

// Set upserts the key in the given scope; a nil workspaceID writes the global
// row.
func (r *SettingRepository) Set(ctx context.Context, key, value string, workspaceID *uint) (*model.Setting, error) {
	var setting model.Setting
	db := r.db.WithContext(ctx)

	scoped := db.Where("key = ?", key)
	if workspaceID == nil {
		scoped = scoped.Where("workspace_id IS NULL")
	} else {
		scoped = scoped.Where("workspace_id = ?", *workspaceID)
	}

	err := scoped.First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		setting = model.Setting{Key: key, Value: value, WorkspaceID: workspaceID}
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}
		return &setting, nil
	}

	setting.Value = value
	if err := db.Save(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}
