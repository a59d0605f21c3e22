package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

type WebhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

var webhookFilterSpec = query.Spec{
	Exact:        []string{"workspace_id"},
	Search:       []string{"name", "url"},
	Exists:       map[string]string{},
	JSONContains: map[string]string{"event": "events"},
	Order:        "created_at DESC",
}

func (r *WebhookRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Webhook], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Webhook{}), webhookFilterSpec, params)
	return query.Paginate[model.Webhook](db, params)
}

func (r *WebhookRepository) GetByID(ctx context.Context, id uint) (*model.Webhook, error) {
	var hook model.Webhook
	result := r.db.WithContext(ctx).First(&hook, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWebhookNotFound
		}
		return nil, result.Error
	}
	return &hook, nil
}

// GetActiveForEvent returns active webhooks in the workspace subscribed to the
// event name.
func (r *WebhookRepository) GetActiveForEvent(ctx context.Context, workspaceID uint, event string) ([]model.Webhook, error) {
	var hooks []model.Webhook
	result := r.db.WithContext(ctx).
		Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Where("events @> ?", `["`+event+`"]`).
		Find(&hooks)
	if result.Error != nil {
		return nil, result.Error
	}
	return hooks, nil
}

func (r *WebhookRepository) Create(ctx context.Context, hook *model.Webhook) error {
	return r.db.WithContext(ctx).Create(hook).Error
}

func (r *WebhookRepository) Update(ctx context.Context, hook *model.Webhook) error {
	result := r.db.WithContext(ctx).Save(hook)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWebhookNotFound
	}
	return nil
}

func (r *WebhookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("webhook_id = ?", id).Delete(&model.WebhookDelivery{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Webhook{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWebhookNotFound
		}
		return nil
	})
}
