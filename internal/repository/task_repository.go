package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/apperr"
	"taskhive/internal/model"
	"taskhive/internal/query"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskRelations carries the relation inputs separated from task-table columns.
// A nil slice means "not provided"; a non-nil empty slice clears the relation.
type TaskRelations struct {
	MilestoneIDs    []uint
	DependencyIDs   []uint
	DependencyTypes []string
}

var taskFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "project_id", "status_id", "type", "priority", "parent_id"},
	Search: []string{"title", "description"},
	Exists: map[string]string{"has_assignee": "assignee_id"},
	Order:  "position ASC, created_at DESC",
}

// AlignDependencyTypes pairs each dependency id with its type positionally.
// When the types slice is shorter, remaining edges default to "blocks".
func AlignDependencyTypes(taskID uint, ids []uint, types []string) []model.TaskDependency {
	edges := make([]model.TaskDependency, 0, len(ids))
	for i, depID := range ids {
		depType := model.DepBlocks
		if i < len(types) && types[i] != "" {
			depType = types[i]
		}
		edges = append(edges, model.TaskDependency{
			TaskID:       taskID,
			DependencyID: depID,
			DepType:      depType,
		})
	}
	return edges
}

func (r *TaskRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Task], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Task{}), taskFilterSpec, params)
	return query.Paginate[model.Task](db, params)
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).
		Preload("Milestones").
		Preload("Dependencies").
		First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// Create persists the task and attaches its relations in one transaction.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task, rel TaskRelations) (*model.Task, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		if err := attachMilestones(tx, task.ID, rel.MilestoneIDs); err != nil {
			return err
		}
		return attachDependencies(tx, task.ID, rel.DependencyIDs, rel.DependencyTypes)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, task.ID)
}

// Update saves task columns and, when relation input is provided, replaces the
// relation sets wholesale (detach-all then re-attach).
func (r *TaskRepository) Update(ctx context.Context, task *model.Task, rel TaskRelations) (*model.Task, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Milestones", "Dependencies").Save(task).Error; err != nil {
			return err
		}
		if rel.MilestoneIDs != nil {
			if err := tx.Exec("DELETE FROM task_milestones WHERE task_id = ?", task.ID).Error; err != nil {
				return err
			}
			if err := attachMilestones(tx, task.ID, rel.MilestoneIDs); err != nil {
				return err
			}
		}
		if rel.DependencyIDs != nil {
			if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskDependency{}).Error; err != nil {
				return err
			}
			if err := attachDependencies(tx, task.ID, rel.DependencyIDs, rel.DependencyTypes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, task.ID)
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_milestones WHERE task_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ? OR dependency_id = ?", id, id).Delete(&model.TaskDependency{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Task{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}

// GetSubtasks retrieves the children of a task in sibling order.
func (r *TaskRepository) GetSubtasks(ctx context.Context, parentID uint) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("position ASC, created_at DESC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func attachMilestones(tx *gorm.DB, taskID uint, milestoneIDs []uint) error {
	for _, mid := range milestoneIDs {
		if err := tx.Exec(
			"INSERT INTO task_milestones (task_id, milestone_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			taskID, mid,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func attachDependencies(tx *gorm.DB, taskID uint, ids []uint, types []string) error {
	for _, depID := range ids {
		if depID == taskID {
			return apperr.Domain("a task cannot depend on itself")
		}
	}
	edges := AlignDependencyTypes(taskID, ids, types)
	if len(edges) == 0 {
		return nil
	}
	return tx.Create(&edges).Error
}
