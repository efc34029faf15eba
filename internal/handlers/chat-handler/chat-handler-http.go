package chat_handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Abedalrahmansd/SSociety-API/internal/dtos/chat_dto"
	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
	"github.com/Abedalrahmansd/SSociety-API/internal/handlers"
	"github.com/Abedalrahmansd/SSociety-API/internal/middleware"
	chat_service "github.com/Abedalrahmansd/SSociety-API/internal/use-case/chat-case"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

type ChatHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  chat_service.ChatServiceContract
}

func NewChatHandler(appState *state.AppState) *ChatHandler {
	return &ChatHandler{
		State:    appState,
		Validate: validator.New(),
		Service:  chat_service.NewChatService(appState),
	}
}

// GetMessages serves room history: newest first, optional before cursor,
// hidden-for-caller entries omitted.
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	claims, ok := middleware.UserClaims(r)
	if !ok {
		return app_error.NewAuthenticationError("user claims not found in context")
	}

	req := chat_dto.GetMessagesRequest{
		ChatGroupID: r.URL.Query().Get("chat_group_id"),
	}

	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return app_error.NewValidationError("limit must be an integer", "limit")
		}
		req.Limit = limit
	}

	if rawBefore := r.URL.Query().Get("before"); rawBefore != "" {
		before, err := time.Parse(time.RFC3339, rawBefore)
		if err != nil {
			return app_error.NewValidationError("before must be an RFC3339 timestamp", "before")
		}
		req.Before = &before
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewValidationError("chat_group_id is required.", "chat_group_id")
	}

	messages, appErr := h.Service.GetMessages(r.Context(), req, claims.ID)
	if appErr != nil {
		return appErr
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	resp := chat_dto.GetMessagesResponse{Messages: messages}
	w.Header().Set("Content-Type", "application/json")
	handlers.EncodeJSON(w, handlers.CreateResponse("messages fetch successfully", resp, reqID))

	return nil
}
