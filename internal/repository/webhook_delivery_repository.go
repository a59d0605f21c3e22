package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

// MaxDeliveryAttempts caps retries; deliveries at or past it are abandoned.
const MaxDeliveryAttempts = 5

type WebhookDeliveryRepository struct {
	db *gorm.DB
}

func NewWebhookDeliveryRepository(db *gorm.DB) *WebhookDeliveryRepository {
	return &WebhookDeliveryRepository{db: db}
}

var deliveryFilterSpec = query.Spec{
	Exact:  []string{"webhook_id", "status", "event"},
	Exists: map[string]string{"is_scheduled": "next_attempt_at"},
	Order:  "created_at DESC",
}

// NextAttemptDelay computes the exponential backoff for a delivery that has
// already failed `attempts` times: 2^attempts minutes.
func NextAttemptDelay(attempts int) time.Duration {
	return time.Duration(1<<uint(attempts)) * time.Minute
}

func (r *WebhookDeliveryRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.WebhookDelivery], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.WebhookDelivery{}), deliveryFilterSpec, params)
	return query.Paginate[model.WebhookDelivery](db, params)
}

func (r *WebhookDeliveryRepository) GetByID(ctx context.Context, id uint) (*model.WebhookDelivery, error) {
	var delivery model.WebhookDelivery
	result := r.db.WithContext(ctx).First(&delivery, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, result.Error
	}
	return &delivery, nil
}

// Create records a pending delivery for the external worker to pick up.
func (r *WebhookDeliveryRepository) Create(ctx context.Context, delivery *model.WebhookDelivery) error {
	if delivery.Status == "" {
		delivery.Status = model.DeliveryPending
	}
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *WebhookDeliveryRepository) MarkAsDelivered(ctx context.Context, delivery *model.WebhookDelivery, code int, body string) error {
	delivery.Status = model.DeliveryDelivered
	delivery.ResponseCode = &code
	delivery.ResponseBody = body
	delivery.Attempts++
	delivery.NextAttemptAt = nil
	return r.db.WithContext(ctx).Save(delivery).Error
}

// MarkAsFailed records the failure and schedules the next attempt with
// exponential backoff computed from the attempt count before increment.
func (r *WebhookDeliveryRepository) MarkAsFailed(ctx context.Context, delivery *model.WebhookDelivery, code *int, body string) error {
	next := time.Now().Add(NextAttemptDelay(delivery.Attempts))
	delivery.Status = model.DeliveryFailed
	delivery.ResponseCode = code
	delivery.ResponseBody = body
	delivery.Attempts++
	delivery.NextAttemptAt = &next
	return r.db.WithContext(ctx).Save(delivery).Error
}

// GetFailedReadyForRetry returns failed deliveries whose backoff has elapsed
// (or was never scheduled) and that still have attempts left.
func (r *WebhookDeliveryRepository) GetFailedReadyForRetry(ctx context.Context) ([]model.WebhookDelivery, error) {
	var deliveries []model.WebhookDelivery
	result := r.db.WithContext(ctx).
		Where("status = ? AND attempts < ?", model.DeliveryFailed, MaxDeliveryAttempts).
		Where("next_attempt_at IS NULL OR next_attempt_at <= ?", time.Now()).
		Order("created_at ASC").
		Find(&deliveries)
	if result.Error != nil {
		return nil, result.Error
	}
	return deliveries, nil
}

// GetPending returns deliveries not yet attempted, oldest first.
func (r *WebhookDeliveryRepository) GetPending(ctx context.Context) ([]model.WebhookDelivery, error) {
	var deliveries []model.WebhookDelivery
	result := r.db.WithContext(ctx).
		Where("status = ?", model.DeliveryPending).
		Order("created_at ASC").
		Find(&deliveries)
	if result.Error != nil {
		return nil, result.Error
	}
	return deliveries, nil
}
