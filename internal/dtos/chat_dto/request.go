package chat_dto

import "time"

// Wire payloads for the socket events. Field names follow the mobile app's
// existing protocol, so a few of them are camelCase while others are snake.

type SendMessageRequest struct {
	ChatGroupID string  `json:"chat_group_id" validate:"required"`
	Msg         string  `json:"msg" validate:"required,max=5000"`
	SenderName  string  `json:"senderName,omitempty"`
	HideFrom    []int64 `json:"hidefrom,omitempty"`
	ReadList    []int64 `json:"readList,omitempty"`
}

type EditMessageRequest struct {
	ID  int64  `json:"id" validate:"required"`
	Msg string `json:"msg" validate:"required,max=5000"`
}

type DeleteMessageRequest struct {
	ID int64 `json:"id" validate:"required"`
}

type MarkReadRequest struct {
	IDs         []int64 `json:"ids" validate:"required,min=1"`
	ChatGroupID string  `json:"chat_group_id" validate:"required"`
}

type HideMessageRequest struct {
	ID int64 `json:"id" validate:"required"`
}

// GetMessagesRequest is bound from query parameters on the history endpoint.
type GetMessagesRequest struct {
	ChatGroupID string `validate:"required"`
	Limit       int    `validate:"omitempty,min=1,max=100"`
	Before      *time.Time
}
