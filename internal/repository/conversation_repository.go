package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskhive/internal/apperr"
	"taskhive/internal/model"
	"taskhive/internal/query"
)

type ConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

var conversationFilterSpec = query.Spec{
	Exact:  []string{"workspace_id", "type"},
	Search: []string{"title"},
	Order:  "updated_at DESC",
}

func (r *ConversationRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Conversation], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Conversation{}), conversationFilterSpec, params)
	return query.Paginate[model.Conversation](db, params)
}

func (r *ConversationRepository) GetByID(ctx context.Context, id uint) (*model.Conversation, error) {
	var conv model.Conversation
	result := r.db.WithContext(ctx).Preload("Members").First(&conv, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, result.Error
	}
	return &conv, nil
}

// Create persists the conversation and attaches its members, the creator with
// the owner role, in one transaction.
func (r *ConversationRepository) Create(ctx context.Context, conv *model.Conversation, memberIDs []uint) (*model.Conversation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		members := []model.ConversationUser{
			{ConversationID: conv.ID, UserID: conv.CreatedBy, Role: model.RoleOwner},
		}
		for _, uid := range memberIDs {
			if uid == conv.CreatedBy {
				continue
			}
			members = append(members, model.ConversationUser{
				ConversationID: conv.ID,
				UserID:         uid,
				Role:           model.RoleMember,
			})
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, conv.ID)
}

// FindOrCreateDirect returns the direct conversation whose membership is
// exactly the two users, creating it when absent. Repeated calls return the
// same row; when duplicates exist the most recently updated one wins.
func (r *ConversationRepository) FindOrCreateDirect(ctx context.Context, workspaceID, userA, userB uint) (*model.Conversation, error) {
	if userA == userB {
		return nil, apperr.Validation(map[string][]string{
			"user_id": {"A direct conversation requires two different users."},
		})
	}

	var conv model.Conversation
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND type = ?", workspaceID, model.ConversationDirect).
		Where("id IN (?)", r.db.Table("conversation_users").
			Select("conversation_id").
			Group("conversation_id").
			Having("COUNT(DISTINCT user_id) = 2 AND COUNT(DISTINCT user_id) FILTER (WHERE user_id IN ?) = 2", []uint{userA, userB})).
		Order("updated_at DESC").
		First(&conv).Error
	if err == nil {
		return r.GetByID(ctx, conv.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = model.Conversation{
		WorkspaceID: workspaceID,
		Type:        model.ConversationDirect,
		CreatedBy:   userA,
	}
	return r.Create(ctx, &conv, []uint{userB})
}

// AddUsers attaches the given users as members, skipping ones already present.
// Direct conversations are fixed at their two participants and refuse new
// members.
func (r *ConversationRepository) AddUsers(ctx context.Context, convID uint, userIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv model.Conversation
		if err := tx.First(&conv, "id = ?", convID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConversationNotFound
			}
			return err
		}
		if conv.Type == model.ConversationDirect {
			return apperr.Domain("members cannot be added to a direct conversation")
		}
		for _, uid := range userIDs {
			if err := tx.Exec(
				"INSERT INTO conversation_users (conversation_id, user_id, role, joined_at) VALUES (?, ?, ?, NOW()) ON CONFLICT DO NOTHING",
				convID, uid, model.RoleMember,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveUsers detaches members. The removal is refused when it would leave the
// conversation without an owner; the check runs inside the same transaction as
// the delete so concurrent removals cannot race past it.
func (r *ConversationRepository) RemoveUsers(ctx context.Context, convID uint, userIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var remainingOwners int64
		if err := tx.Model(&model.ConversationUser{}).
			Where("conversation_id = ? AND role = ? AND user_id NOT IN ?", convID, model.RoleOwner, userIDs).
			Count(&remainingOwners).Error; err != nil {
			return err
		}
		if remainingOwners == 0 {
			return apperr.Domain("a conversation must keep at least one owner")
		}
		return tx.Where("conversation_id = ? AND user_id IN ?", convID, userIDs).
			Delete(&model.ConversationUser{}).Error
	})
}

// MarkRead stamps the member's last_read_at.
func (r *ConversationRepository) MarkRead(ctx context.Context, convID, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.ConversationUser{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Update("last_read_at", gorm.Expr("NOW()")).Error
}
