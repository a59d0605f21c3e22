package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
	"taskhive/internal/storage"
)

type AttachmentRepository struct {
	db    *gorm.DB
	blobs storage.BlobStore
	log   zerolog.Logger
}

func NewAttachmentRepository(db *gorm.DB, blobs storage.BlobStore, log zerolog.Logger) *AttachmentRepository {
	return &AttachmentRepository{db: db, blobs: blobs, log: log}
}

var attachmentFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "entity_type", "entity_id", "uploaded_by"},
	Search: []string{"file_name"},
	Order:  "created_at DESC",
}

func (r *AttachmentRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Attachment], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Attachment{}), attachmentFilterSpec, params)
	return query.Paginate[model.Attachment](db, params)
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uint) (*model.Attachment, error) {
	var att model.Attachment
	result := r.db.WithContext(ctx).First(&att, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAttachmentNotFound
		}
		return nil, result.Error
	}
	return &att, nil
}

func (r *AttachmentRepository) Create(ctx context.Context, att *model.Attachment) error {
	return r.db.WithContext(ctx).Create(att).Error
}

// Delete removes the blob first (best effort), then the row. A failed blob
// delete does not stop the row delete: the row is authoritative and dangling
// storage is preferred over a dangling reference.
func (r *AttachmentRepository) Delete(ctx context.Context, att *model.Attachment) error {
	if err := r.blobs.Delete(ctx, att.Path); err != nil {
		r.log.Warn().Err(err).Str("path", att.Path).Uint("attachment_id", att.ID).
			Msg("blob delete failed, removing row anyway")
	}
	result := r.db.WithContext(ctx).Delete(&model.Attachment{}, "id = ?", att.ID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
