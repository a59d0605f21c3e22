package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var projectFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "status", "owner_id"},
	Search: []string{"name", "description"},
	Order:  "created_at DESC",
}

func (r *ProjectRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Project], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Project{}), projectFilterSpec, params)
	return query.Paginate[model.Project](db, params)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*model.Project, error) {
	var project model.Project
	result := r.db.WithContext(ctx).First(&project, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, result.Error
	}
	return &project, nil
}

// Create persists the project and attaches the owner as its first member.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Create(project).Error; err != nil {
			return err
		}
		return tx.Exec(
			"INSERT INTO project_users (project_id, user_id, role) VALUES (?, ?, ?)",
			project.ID, project.OwnerID, "owner",
		).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).Omit("Members").Save(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM project_users WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}

// AddMember attaches a user with the given role.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID uint, role string) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO project_users (project_id, user_id, role) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		projectID, userID, role,
	).Error
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID uint) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM project_users WHERE project_id = ? AND user_id = ?",
		projectID, userID,
	).Error
}
