package chat_repo

import (
	"context"
	"time"

	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
)

// ChatRepoContract is the durable message log. It never exposes a physical
// delete; the protocol only ever flips isDeleted.
type ChatRepoContract interface {
	CreateMessage(ctx context.Context, msg *entity.Message) *app_error.AppError
	FindMessageByID(ctx context.Context, id int64) (*entity.Message, *app_error.AppError)
	FindMessagesByIDs(ctx context.Context, ids []int64, chatGroupID string) ([]*entity.Message, *app_error.AppError)
	UpdateMessage(ctx context.Context, msg *entity.Message, fields ...string) *app_error.AppError
	GetMessages(ctx context.Context, chatGroupID string, limit int, before *time.Time) ([]*entity.Message, *app_error.AppError)
}
