package chat_service

import (
	"context"

	"github.com/Abedalrahmansd/SSociety-API/internal/dtos/chat_dto"
	"github.com/Abedalrahmansd/SSociety-API/internal/entity"
	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
)

type ChatServiceContract interface {
	// SendMessage validates the room against the directory and persists a
	// new message with a server-side timestamp.
	SendMessage(ctx context.Context, req chat_dto.SendMessageRequest, senderID int64, senderEmail string) (*entity.Message, *app_error.AppError)

	// EditMessage mutates the body and marks the message edited. Only the
	// original sender may edit.
	EditMessage(ctx context.Context, req chat_dto.EditMessageRequest, senderID int64) (*entity.Message, *app_error.AppError)

	// DeleteMessage soft-deletes. Only the original sender may delete; the
	// row is never physically removed.
	DeleteMessage(ctx context.Context, req chat_dto.DeleteMessageRequest, senderID int64) (*entity.Message, *app_error.AppError)

	// MarkMessagesRead adds the reader to each matching message's read list.
	// Idempotent per (message, reader).
	MarkMessagesRead(ctx context.Context, req chat_dto.MarkReadRequest, readerID int64) *app_error.AppError

	// HideMessage adds the caller to the message's hide list. Affects only
	// the caller's visibility.
	HideMessage(ctx context.Context, req chat_dto.HideMessageRequest, userID int64) (*entity.Message, *app_error.AppError)

	// GetMessages returns room history newest-first, excluding messages
	// hidden from the viewer.
	GetMessages(ctx context.Context, req chat_dto.GetMessagesRequest, viewerID int64) ([]*entity.Message, *app_error.AppError)
}
