package grade_repo

import (
	"context"

	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
)

// GradeRepoContract is the room directory: a chat room id is valid iff some
// grade carries it as chat_group_id. The relation is intentionally loose
// (opaque string, not a foreign key).
type GradeRepoContract interface {
	FindByChatGroupID(ctx context.Context, chatGroupID string) (*entity.Grade, *app_error.AppError)
}
