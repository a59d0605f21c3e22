package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/apperr"
	"taskhive/internal/model"
	"taskhive/internal/query"
)

type TimeLogRepository struct {
	db *gorm.DB
}

func NewTimeLogRepository(db *gorm.DB) *TimeLogRepository {
	return &TimeLogRepository{db: db}
}

var timeLogFilterSpec = query.Spec{
	Exact:      []string{"workspace_id", "task_id", "user_id", "billable"},
	DateColumn: "started_at",
	Null:       map[string]string{"is_running": "ended_at"},
	Order:      "started_at DESC",
}

func (r *TimeLogRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.TimeLog], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.TimeLog{}), timeLogFilterSpec, params)
	return query.Paginate[model.TimeLog](db, params)
}

func (r *TimeLogRepository) GetByID(ctx context.Context, id uint) (*model.TimeLog, error) {
	var log model.TimeLog
	result := r.db.WithContext(ctx).First(&log, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTimeLogNotFound
		}
		return nil, result.Error
	}
	return &log, nil
}

// FindRunning returns the user's running timer, or nil when none exists.
func (r *TimeLogRepository) FindRunning(ctx context.Context, userID uint) (*model.TimeLog, error) {
	var log model.TimeLog
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at DESC").
		First(&log)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &log, nil
}

// Create persists the log. A log without an end time is a running timer, and a
// user may hold only one; the check runs inside the insert transaction.
func (r *TimeLogRepository) Create(ctx context.Context, log *model.TimeLog) error {
	fillDuration(log)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if log.EndedAt == nil {
			if err := ensureNoRunningTimer(tx, log.UserID, 0); err != nil {
				return err
			}
		}
		return tx.Create(log).Error
	})
}

// Update saves the log. Clearing ended_at restarts the timer and is subject to
// the same single-running-timer rule.
func (r *TimeLogRepository) Update(ctx context.Context, log *model.TimeLog) error {
	fillDuration(log)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if log.EndedAt == nil {
			if err := ensureNoRunningTimer(tx, log.UserID, log.ID); err != nil {
				return err
			}
		}
		result := tx.Save(log)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTimeLogNotFound
		}
		return nil
	})
}

func (r *TimeLogRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.TimeLog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTimeLogNotFound
	}
	return nil
}

func ensureNoRunningTimer(tx *gorm.DB, userID, excludeID uint) error {
	var count int64
	db := tx.Model(&model.TimeLog{}).Where("user_id = ? AND ended_at IS NULL", userID)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation(map[string][]string{
			"user_id": {"The user already has a running time log."},
		})
	}
	return nil
}

func fillDuration(log *model.TimeLog) {
	if log.EndedAt != nil {
		log.Duration = int64(log.EndedAt.Sub(log.StartedAt).Seconds())
	} else {
		log.Duration = 0
	}
}
