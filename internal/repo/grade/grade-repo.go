package grade_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
	"github.com/Abedalrahmansd/SSociety-API/internal/utils"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

const gradeCacheTTL = 5 * time.Minute

type GradeRepo struct {
	AppState *state.AppState
}

func NewGradeRepo(appState *state.AppState) GradeRepoContract {
	return &GradeRepo{
		AppState: appState,
	}
}

// FindByChatGroupID resolves a room id to its grade. Lookups are
// read-through cached in redis; a nil redis client skips the cache.
func (r *GradeRepo) FindByChatGroupID(ctx context.Context, chatGroupID string) (*entity.Grade, *app_error.AppError) {
	cacheKey := fmt.Sprintf("grade:chat_group:%s", chatGroupID)

	if r.AppState.Redis != nil {
		cached, cacheErr := utils.GetCacheData[entity.Grade](ctx, r.AppState.Redis, cacheKey)
		if cacheErr == nil && cached != nil {
			return cached, nil
		}
	}

	var grade entity.Grade
	if err := r.AppState.DB.WithContext(ctx).Where("chat_group_id = ?", chatGroupID).First(&grade).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NewNotFoundError("chat group not found")
		}
		log.Error().Err(err).Str("chatGroupID", chatGroupID).Msg("failed to fetch grade for chat group")
		return nil, app_error.NewStoreError("failed to fetch chat group")
	}

	if r.AppState.Redis != nil {
		if err := utils.SetCacheData(ctx, r.AppState.Redis, cacheKey, &grade, gradeCacheTTL); err != nil {
			log.Warn().Err(err).Str("chatGroupID", chatGroupID).Msg("failed to cache grade lookup")
		}
	}

	return &grade, nil
}
