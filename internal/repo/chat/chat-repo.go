package chat_repo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

type ChatRepo struct {
	AppState *state.AppState
}

func NewChatRepo(appState *state.AppState) ChatRepoContract {
	return &ChatRepo{
		AppState: appState,
	}
}

func (r *ChatRepo) CreateMessage(ctx context.Context, msg *entity.Message) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(msg).Error; err != nil {
		log.Error().Err(err).Str("chatGroupID", msg.ChatGroupID).Msg("failed to insert message")
		return app_error.NewStoreError("failed to create message")
	}
	return nil
}

func (r *ChatRepo) FindMessageByID(ctx context.Context, id int64) (*entity.Message, *app_error.AppError) {
	var msg entity.Message
	if err := r.AppState.DB.WithContext(ctx).First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewNotFoundError("Message not found.")
		}
		log.Error().Err(err).Int64("messageID", id).Msg("failed to fetch message")
		return nil, app_error.NewStoreError("failed to fetch message")
	}
	return &msg, nil
}

func (r *ChatRepo) FindMessagesByIDs(ctx context.Context, ids []int64, chatGroupID string) ([]*entity.Message, *app_error.AppError) {
	var msgs []*entity.Message
	err := r.AppState.DB.WithContext(ctx).
		Where("id IN ? AND chat_group_id = ?", ids, chatGroupID).
		Find(&msgs).Error
	if err != nil {
		log.Error().Err(err).Str("chatGroupID", chatGroupID).Msg("failed to fetch messages by ids")
		return nil, app_error.NewStoreError("failed to fetch messages")
	}
	return msgs, nil
}

// UpdateMessage writes the named columns of msg back by primary key. No row
// locking: concurrent edits are last-write-wins.
func (r *ChatRepo) UpdateMessage(ctx context.Context, msg *entity.Message, fields ...string) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).
		Model(&entity.Message{}).
		Where("id = ?", msg.ID).
		Select(fields).
		Updates(msg).Error
	if err != nil {
		log.Error().Err(err).Int64("messageID", msg.ID).Msg("failed to update message")
		return app_error.NewStoreError("failed to update message")
	}
	return nil
}

// GetMessages returns the newest messages first. The before cursor bounds
// sentAt from above for pagination; ties on sentAt break by id descending.
func (r *ChatRepo) GetMessages(ctx context.Context, chatGroupID string, limit int, before *time.Time) ([]*entity.Message, *app_error.AppError) {
	q := r.AppState.DB.WithContext(ctx).
		Where("chat_group_id = ?", chatGroupID)

	if before != nil {
		q = q.Where("sent_at < ?", *before)
	}

	var msgs []*entity.Message
	err := q.Order("sent_at DESC").Order("id DESC").Limit(limit).Find(&msgs).Error
	if err != nil {
		log.Error().Err(err).Str("chatGroupID", chatGroupID).Msg("failed to fetch message history")
		return nil, app_error.NewStoreError("failed to fetch messages")
	}
	return msgs, nil
}
