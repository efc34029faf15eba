package chat_service

import (
	"context"
	"net/http"
	"time"

	"github.com/Abedalrahmansd/SSociety-API/internal/dtos/chat_dto"
	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
	chat_repo "github.com/Abedalrahmansd/SSociety-API/internal/repo/chat"
	grade_repo "github.com/Abedalrahmansd/SSociety-API/internal/repo/grade"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

type ChatService struct {
	AppState  *state.AppState
	ChatRepo  chat_repo.ChatRepoContract
	GradeRepo grade_repo.GradeRepoContract
}

func NewChatService(appState *state.AppState) ChatServiceContract {
	return &ChatService{
		AppState:  appState,
		ChatRepo:  chat_repo.NewChatRepo(appState),
		GradeRepo: grade_repo.NewGradeRepo(appState),
	}
}

func (c *ChatService) SendMessage(ctx context.Context, req chat_dto.SendMessageRequest, senderID int64, senderEmail string) (*entity.Message, *app_error.AppError) {
	if _, err := c.GradeRepo.FindByChatGroupID(ctx, req.ChatGroupID); err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.NewAppError(http.StatusBadRequest, "Invalid chat group.", "chat_group_id")
		}
		return nil, err
	}

	senderName := req.SenderName
	if senderName == "" {
		senderName = senderEmail
	}

	msg := &entity.Message{
		ChatGroupID: req.ChatGroupID,
		Sender:      senderID,
		SenderName:  senderName,
		Msg:         req.Msg,
		HideFrom:    req.HideFrom,
		ReadList:    req.ReadList,
		SentAt:      time.Now().UTC(),
	}

	if err := c.ChatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (c *ChatService) EditMessage(ctx context.Context, req chat_dto.EditMessageRequest, senderID int64) (*entity.Message, *app_error.AppError) {
	msg, err := c.ChatRepo.FindMessageByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if msg.Sender != senderID {
		return nil, app_error.NewAuthorizationError("Not allowed to edit this message.")
	}

	msg.Msg = req.Msg
	msg.IsEdited = true
	if err := c.ChatRepo.UpdateMessage(ctx, msg, "msg", "is_edited"); err != nil {
		return nil, err
	}

	return msg, nil
}

func (c *ChatService) DeleteMessage(ctx context.Context, req chat_dto.DeleteMessageRequest, senderID int64) (*entity.Message, *app_error.AppError) {
	msg, err := c.ChatRepo.FindMessageByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if msg.Sender != senderID {
		return nil, app_error.NewAuthorizationError("Not allowed to delete this message.")
	}

	msg.IsDeleted = true
	if err := c.ChatRepo.UpdateMessage(ctx, msg, "is_deleted"); err != nil {
		return nil, err
	}

	return msg, nil
}

func (c *ChatService) MarkMessagesRead(ctx context.Context, req chat_dto.MarkReadRequest, readerID int64) *app_error.AppError {
	msgs, err := c.ChatRepo.FindMessagesByIDs(ctx, req.IDs, req.ChatGroupID)
	if err != nil {
		return err
	}

	// Ids that match nothing in this room are skipped silently; the reader
	// only grows read lists of messages that actually exist there.
	for _, msg := range msgs {
		if msg.ReadList.Contains(readerID) {
			continue
		}
		msg.ReadList = append(msg.ReadList, readerID)
		if err := c.ChatRepo.UpdateMessage(ctx, msg, "read_list"); err != nil {
			return err
		}
	}

	return nil
}

func (c *ChatService) HideMessage(ctx context.Context, req chat_dto.HideMessageRequest, userID int64) (*entity.Message, *app_error.AppError) {
	msg, err := c.ChatRepo.FindMessageByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if msg.HideFrom.Contains(userID) {
		return msg, nil
	}

	msg.HideFrom = append(msg.HideFrom, userID)
	if err := c.ChatRepo.UpdateMessage(ctx, msg, "hidefrom"); err != nil {
		return nil, err
	}

	return msg, nil
}

func (c *ChatService) GetMessages(ctx context.Context, req chat_dto.GetMessagesRequest, viewerID int64) ([]*entity.Message, *app_error.AppError) {
	if req.ChatGroupID == "" {
		return nil, app_error.NewValidationError("chat_group_id is required.", "chat_group_id")
	}

	if _, err := c.GradeRepo.FindByChatGroupID(ctx, req.ChatGroupID); err != nil {
		if err.Code == http.StatusNotFound {
			return nil, app_error.NewAppError(http.StatusBadRequest, "Invalid chat group.", "chat_group_id")
		}
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	msgs, err := c.ChatRepo.GetMessages(ctx, req.ChatGroupID, limit, req.Before)
	if err != nil {
		return nil, err
	}

	// Per-viewer suppression: hidden messages are omitted regardless of
	// their deletion state.
	visible := make([]*entity.Message, 0, len(msgs))
	for _, msg := range msgs {
		if msg.VisibleTo(viewerID) {
			visible = append(visible, msg)
		}
	}

	return visible, nil
}
