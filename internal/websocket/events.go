package websocket

import "encoding/json"

// Client -> server events.
const (
	EventJoinRoom      = "join_room"
	EventTypingStart   = "typing_start"
	EventTypingStop    = "typing_stop"
	EventSendMessage   = "send_message"
	EventEditMessage   = "edit_message"
	EventDeleteMessage = "delete_message"
	EventMarkRead      = "mark_read"
	EventHideMessage   = "hide_message"
)

// Server -> client events.
const (
	EventAck            = "ack"
	EventUserOnline     = "user_online"
	EventUserOffline    = "user_offline"
	EventOnlineUsers    = "online_users"
	EventTyping         = "typing"
	EventNewMessage     = "new_message"
	EventMessageEdited  = "message_edited"
	EventMessageDeleted = "message_deleted"
	EventMessagesRead   = "messages_read"
)

// Envelope is the frame the client sends. AckID is optional; a frame without
// one gets no direct reply, like an omitted socket callback.
type Envelope struct {
	Event string          `json:"event"`
	AckID int64           `json:"ack_id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutgoingEvent is the frame the server sends, both for broadcasts and for
// direct replies.
type OutgoingEvent struct {
	Event string `json:"event"`
	AckID int64  `json:"ack_id,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Ack is the structured reply to the event's originator. It never travels on
// the broadcast path.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func successAck(data any) Ack {
	return Ack{Status: "success", Data: data}
}

func errorAck(message string) Ack {
	return Ack{Status: "error", Message: message}
}

// Broadcast payloads.

type UserStatusPayload struct {
	ChatGroupID string `json:"chat_group_id"`
	UserID      int64  `json:"user_id"`
}

type OnlineUsersPayload struct {
	ChatGroupID string  `json:"chat_group_id"`
	UserIDs     []int64 `json:"user_ids"`
}

type TypingPayload struct {
	ChatGroupID string `json:"chat_group_id"`
	UserID      int64  `json:"user_id"`
	IsTyping    bool   `json:"isTyping"`
}

type MessagesReadPayload struct {
	ChatGroupID string  `json:"chat_group_id"`
	MessageIDs  []int64 `json:"message_ids"`
	ReaderID    int64   `json:"reader_id"`
}

// decodeRoomID accepts the room id either as a bare JSON string or wrapped
// in an object, since older app builds send both shapes.
func decodeRoomID(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var obj struct {
		ChatGroupID string `json:"chat_group_id"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return obj.ChatGroupID
	}
	return ""
}
