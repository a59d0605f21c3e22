package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

type MilestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

var milestoneFilterSpec = query.Spec{
	Exact:      []string{"workspace_id", "project_id", "status"},
	Search:     []string{"name", "description"},
	DateColumn: "due_date",
	Order:      "position ASC, created_at DESC",
}

func (r *MilestoneRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Milestone], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Milestone{}), milestoneFilterSpec, params)
	return query.Paginate[model.Milestone](db, params)
}

func (r *MilestoneRepository) GetByID(ctx context.Context, id uint) (*model.Milestone, error) {
	var milestone model.Milestone
	result := r.db.WithContext(ctx).First(&milestone, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, result.Error
	}
	return &milestone, nil
}

func (r *MilestoneRepository) Create(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *MilestoneRepository) Update(ctx context.Context, milestone *model.Milestone) error {
	result := r.db.WithContext(ctx).Save(milestone)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneNotFound
	}
	return nil
}

func (r *MilestoneRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_milestones WHERE milestone_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Milestone{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMilestoneNotFound
		}
		return nil
	})
}
