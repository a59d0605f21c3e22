package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

type FormRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{db: db}
}

var formFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "is_active"},
	Search: []string{"title", "description"},
	Order:  "created_at DESC",
}

var formResponseFilterSpec = query.Spec{
	Exact: []string{"workspace_id", "form_id", "submitted_by"},
	Order: "created_at DESC",
}

func (r *FormRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Form], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Form{}), formFilterSpec, params)
	return query.Paginate[model.Form](db, params)
}

// GetByID loads the form with its field list in declared order. The field list
// is the schema that response validation is derived from.
func (r *FormRepository) GetByID(ctx context.Context, id uint) (*model.Form, error) {
	var form model.Form
	result := r.db.WithContext(ctx).
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&form, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, result.Error
	}
	return &form, nil
}

// Create persists the form and its field rows in one transaction.
func (r *FormRepository) Create(ctx context.Context, form *model.Form, fields []model.FormField) (*model.Form, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Fields").Create(form).Error; err != nil {
			return err
		}
		return createFormFields(tx, form.ID, fields)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, form.ID)
}

// Update saves form columns; a non-nil fields slice replaces the field list
// wholesale.
func (r *FormRepository) Update(ctx context.Context, form *model.Form, fields []model.FormField) (*model.Form, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Fields").Save(form).Error; err != nil {
			return err
		}
		if fields != nil {
			if err := tx.Where("form_id = ?", form.ID).Delete(&model.FormField{}).Error; err != nil {
				return err
			}
			return createFormFields(tx, form.ID, fields)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, form.ID)
}

func (r *FormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", id).Delete(&model.FormField{}).Error; err != nil {
			return err
		}
		if err := tx.Where("form_id = ?", id).Delete(&model.FormResponse{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Form{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrFormNotFound
		}
		return nil
	})
}

func (r *FormRepository) CreateResponse(ctx context.Context, resp *model.FormResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *FormRepository) GetResponse(ctx context.Context, id uint) (*model.FormResponse, error) {
	var resp model.FormResponse
	result := r.db.WithContext(ctx).First(&resp, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrFormResponseNotFound
		}
		return nil, result.Error
	}
	return &resp, nil
}

func (r *FormRepository) UpdateResponse(ctx context.Context, resp *model.FormResponse) error {
	result := r.db.WithContext(ctx).Save(resp)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFormResponseNotFound
	}
	return nil
}

func (r *FormRepository) ListResponses(ctx context.Context, params map[string]string) (*query.Page[model.FormResponse], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.FormResponse{}), formResponseFilterSpec, params)
	return query.Paginate[model.FormResponse](db, params)
}

func createFormFields(tx *gorm.DB, formID uint, fields []model.FormField) error {
	if len(fields) == 0 {
		return nil
	}
	for i := range fields {
		fields[i].ID = 0
		fields[i].FormID = formID
		fields[i].Position = i
	}
	return tx.Create(&fields).Error
}
