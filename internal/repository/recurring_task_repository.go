package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

type RecurringTaskRepository struct {
	db *gorm.DB
}

func NewRecurringTaskRepository(db *gorm.DB) *RecurringTaskRepository {
	return &RecurringTaskRepository{db: db}
}

var recurringFilterSpec = query.Spec{
	Exact: []string{"workspace_id", "task_id", "frequency"},
	Order: "next_due_date ASC",
}

func (r *RecurringTaskRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.RecurringTask], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.RecurringTask{}), recurringFilterSpec, params)
	return query.Paginate[model.RecurringTask](db, params)
}

func (r *RecurringTaskRepository) GetByID(ctx context.Context, id uint) (*model.RecurringTask, error) {
	var rt model.RecurringTask
	result := r.db.WithContext(ctx).First(&rt, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringTaskNotFound
		}
		return nil, result.Error
	}
	return &rt, nil
}

func (r *RecurringTaskRepository) GetByTaskID(ctx context.Context, taskID uint) (*model.RecurringTask, error) {
	var rt model.RecurringTask
	result := r.db.WithContext(ctx).First(&rt, "task_id = ?", taskID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &rt, nil
}

func (r *RecurringTaskRepository) Create(ctx context.Context, rt *model.RecurringTask) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *RecurringTaskRepository) Update(ctx context.Context, rt *model.RecurringTask) error {
	result := r.db.WithContext(ctx).Save(rt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecurringTaskNotFound
	}
	return nil
}

func (r *RecurringTaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringTask{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecurringTaskNotFound
	}
	return nil
}

// GetDue returns active schedules whose next due date has arrived. This is the
// sole discovery mechanism for the external scheduler.
func (r *RecurringTaskRepository) GetDue(ctx context.Context) ([]model.RecurringTask, error) {
	var due []model.RecurringTask
	result := r.db.WithContext(ctx).
		Where("is_active = ? AND next_due_date <= ?", true, time.Now()).
		Order("next_due_date ASC").
		Find(&due)
	if result.Error != nil {
		return nil, result.Error
	}
	return due, nil
}
