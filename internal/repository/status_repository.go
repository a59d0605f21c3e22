package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

var statusFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "is_default"},
	Search: []string{"name"},
	Order:  "position ASC, created_at DESC",
}

func (r *StatusRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Status], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Status{}), statusFilterSpec, params)
	return query.Paginate[model.Status](db, params)
}

func (r *StatusRepository) GetByID(ctx context.Context, id uint) (*model.Status, error) {
	var status model.Status
	result := r.db.WithContext(ctx).First(&status, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, result.Error
	}
	return &status, nil
}

func (r *StatusRepository) Create(ctx context.Context, status *model.Status) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *StatusRepository) Update(ctx context.Context, status *model.Status) error {
	result := r.db.WithContext(ctx).Save(status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusNotFound
	}
	return nil
}

func (r *StatusRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("status_id = ?", id).Delete(&model.PipelineStatus{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Status{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStatusNotFound
		}
		return nil
	})
}

func (r *StatusRepository) CreatePipeline(ctx context.Context, pipeline *model.Pipeline) error {
	return r.db.WithContext(ctx).Omit("Statuses").Create(pipeline).Error
}

func (r *StatusRepository) GetPipeline(ctx context.Context, id uint) (*model.Pipeline, error) {
	var pipeline model.Pipeline
	result := r.db.WithContext(ctx).First(&pipeline, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPipelineNotFound
		}
		return nil, result.Error
	}
	return &pipeline, nil
}

func (r *StatusRepository) ListPipelines(ctx context.Context, params map[string]string) (*query.Page[model.Pipeline], error) {
	spec := query.Spec{
		Exact:  []string{"workspace_id", "is_default"},
		Search: []string{"name"},
		Order:  "created_at DESC",
	}
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Pipeline{}), spec, params)
	return query.Paginate[model.Pipeline](db, params)
}

func (r *StatusRepository) DeletePipeline(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pipeline_id = ?", id).Delete(&model.PipelineStatus{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Pipeline{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPipelineNotFound
		}
		return nil
	})
}

// GetPipelineStatuses returns the pipeline's statuses in pipeline order.
func (r *StatusRepository) GetPipelineStatuses(ctx context.Context, pipelineID uint) ([]model.Status, error) {
	var statuses []model.Status
	result := r.db.WithContext(ctx).
		Joins("JOIN pipeline_statuses ps ON ps.status_id = statuses.id").
		Where("ps.pipeline_id = ?", pipelineID).
		Order("ps.position ASC").
		Find(&statuses)
	if result.Error != nil {
		return nil, result.Error
	}
	return statuses, nil
}

// ReorderPipeline replaces the pipeline's status ordering in one transaction.
func (r *StatusRepository) ReorderPipeline(ctx context.Context, pipelineID uint, statusIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pipeline_id = ?", pipelineID).Delete(&model.PipelineStatus{}).Error; err != nil {
			return err
		}
		rows := make([]model.PipelineStatus, len(statusIDs))
		for i, sid := range statusIDs {
			rows[i] = model.PipelineStatus{PipelineID: pipelineID, StatusID: sid, Position: i}
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}
