package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/apperr"
	"taskhive/internal/model"
	"taskhive/internal/query"
	"taskhive/internal/service/wikirev"
)

type WikiRepository struct {
	db        *gorm.DB
	revisions *wikirev.Service
}

func NewWikiRepository(db *gorm.DB, revisions *wikirev.Service) *WikiRepository {
	return &WikiRepository{db: db, revisions: revisions}
}

// WikiUpdate carries the mutable wiki fields plus revision metadata.
type WikiUpdate struct {
	Title           *string
	Content         *string
	ParentID        *uint
	ClearParent     bool
	IsPublished     *bool
	Tags            model.StringSlice
	Description     *string
	RevisionSummary string
	AuthorID        uint
}

var wikiFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "parent_id", "is_published"},
	Search: []string{"title", "content"},
	Order:  "created_at DESC",
}

func (r *WikiRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Wiki], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Wiki{}), wikiFilterSpec, params)
	return query.Paginate[model.Wiki](db, params)
}

func (r *WikiRepository) GetByID(ctx context.Context, id uint) (*model.Wiki, error) {
	var wiki model.Wiki
	result := r.db.WithContext(ctx).First(&wiki, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWikiNotFound
		}
		return nil, result.Error
	}
	return &wiki, nil
}

func (r *WikiRepository) GetBySlug(ctx context.Context, workspaceID uint, slug string) (*model.Wiki, error) {
	var wiki model.Wiki
	result := r.db.WithContext(ctx).First(&wiki, "workspace_id = ? AND slug = ?", workspaceID, slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrWikiNotFound
		}
		return nil, result.Error
	}
	return &wiki, nil
}

func (r *WikiRepository) GetRevisions(ctx context.Context, wikiID uint) ([]model.WikiRevision, error) {
	var revs []model.WikiRevision
	result := r.db.WithContext(ctx).
		Where("wiki_id = ?", wikiID).
		Order("created_at DESC").
		Find(&revs)
	if result.Error != nil {
		return nil, result.Error
	}
	return revs, nil
}

// SlugTaken reports whether slug is already used in the workspace, optionally
// excluding one record (the one being updated).
func (r *WikiRepository) SlugTaken(ctx context.Context, workspaceID uint, slug string, excludeID uint) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&model.Wiki{}).
		Where("workspace_id = ? AND slug = ?", workspaceID, slug)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists the wiki together with its initial revision.
func (r *WikiRepository) Create(ctx context.Context, wiki *model.Wiki) (*model.Wiki, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wiki).Error; err != nil {
			return err
		}
		rev := model.WikiRevision{
			WikiID:   wiki.ID,
			Title:    wiki.Title,
			Content:  wiki.Content,
			Summary:  "Initial version",
			AuthorID: wiki.CreatedBy,
		}
		return tx.Create(&rev).Error
	})
	if err != nil {
		return nil, err
	}
	return wiki, nil
}

// Update applies the changes and appends a revision only when the revision
// service judges the title/content change significant.
func (r *WikiRepository) Update(ctx context.Context, wiki *model.Wiki, upd WikiUpdate) (*model.Wiki, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newTitle := wiki.Title
		if upd.Title != nil {
			newTitle = *upd.Title
		}
		newContent := wiki.Content
		if upd.Content != nil {
			newContent = *upd.Content
		}

		snapshot := r.revisions.ShouldSnapshot(wiki.Title, wiki.Content, newTitle, newContent)

		if upd.ParentID != nil {
			if err := r.checkParent(tx, wiki.ID, *upd.ParentID); err != nil {
				return err
			}
			wiki.ParentID = upd.ParentID
		} else if upd.ClearParent {
			wiki.ParentID = nil
		}

		wiki.Title = newTitle
		wiki.Content = newContent
		if upd.IsPublished != nil {
			wiki.IsPublished = *upd.IsPublished
		}
		if upd.Tags != nil {
			wiki.Tags = upd.Tags
		}
		if upd.Description != nil {
			wiki.Description = *upd.Description
		}

		if err := tx.Save(wiki).Error; err != nil {
			return err
		}

		if snapshot {
			rev := model.WikiRevision{
				WikiID:   wiki.ID,
				Title:    wiki.Title,
				Content:  wiki.Content,
				Summary:  r.revisions.Summary(upd.RevisionSummary),
				AuthorID: upd.AuthorID,
			}
			return tx.Create(&rev).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wiki, nil
}

// Delete removes the wiki and reparents its children one level up (to the
// deleted node's own parent) in the same transaction.
func (r *WikiRepository) Delete(ctx context.Context, wiki *model.Wiki) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Wiki{}).
			Where("parent_id = ?", wiki.ID).
			Update("parent_id", wiki.ParentID).Error; err != nil {
			return err
		}
		if err := tx.Where("wiki_id = ?", wiki.ID).Delete(&model.WikiRevision{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Wiki{}, "id = ?", wiki.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrWikiNotFound
		}
		return nil
	})
}

// checkParent rejects self-parenting and walks the ancestor chain of the
// candidate parent so deeper cycles (A -> B -> A) can never be introduced.
func (r *WikiRepository) checkParent(tx *gorm.DB, wikiID, parentID uint) error {
	if parentID == wikiID {
		return apperr.Domain("a wiki cannot be its own parent")
	}
	current := parentID
	for current != 0 {
		var parent model.Wiki
		if err := tx.Select("id", "parent_id").First(&parent, "id = ?", current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWikiNotFound
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == wikiID {
			return apperr.Domain("moving a wiki under its own descendant would create a cycle")
		}
		current = *parent.ParentID
	}
	return nil
}
