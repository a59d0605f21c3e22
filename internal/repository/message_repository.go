package repository

import (
	"context"

	"gorm.io/gorm"

	"taskhive/internal/model"
	"taskhive/internal/query"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

var messageFilterSpec = query.Spec{
	Exact:  []string{"conversation_id", "user_id"},
	Search: []string{"body"},
	Order:  "created_at DESC",
}

func (r *MessageRepository) List(ctx context.Context, params map[string]string) (*query.Page[model.Message], error) {
	db := query.Apply(r.db.WithContext(ctx).Model(&model.Message{}), messageFilterSpec, params)
	return query.Paginate[model.Message](db, params)
}

// Create inserts the message and touches the conversation so direct lookups
// ordered by updated_at see recent activity first.
func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("updated_at", gorm.Expr("NOW()")).Error
	})
}
