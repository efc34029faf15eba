package websocket

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Abedalrahmansd/SSociety-API/internal/dtos/chat_dto"
	chat_service "github.com/Abedalrahmansd/SSociety-API/internal/use-case/chat-case"
)

// Broadcaster is the slice of the hub the session needs: room fan-out plus
// the direct-reply path back to the originating connection.
type Broadcaster interface {
	JoinRoom(roomID string, client *Client)
	BroadcastToRoom(roomID string, event OutgoingEvent)
	BroadcastToRoomExceptUser(roomID string, event OutgoingEvent, exceptUserID int64)
	SendToClient(client *Client, event OutgoingEvent)
}

// Session dispatches the room-scoped chat events for one authenticated
// connection. Broadcasts only happen after the store mutation succeeded;
// every failure becomes an error ack to the caller and nothing else.
type Session struct {
	hub      Broadcaster
	client   *Client
	service  chat_service.ChatServiceContract
	validate *validator.Validate
}

func NewSession(hub Broadcaster, client *Client, service chat_service.ChatServiceContract, validate *validator.Validate) *Session {
	return &Session{
		hub:      hub,
		client:   client,
		service:  service,
		validate: validate,
	}
}

func (s *Session) Handle(ctx context.Context, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn().Err(err).Str("clientID", s.client.ID).Msg("ws: malformed frame")
		return
	}

	switch env.Event {
	case EventJoinRoom:
		s.handleJoinRoom(env)
	case EventTypingStart:
		s.handleTyping(env, true)
	case EventTypingStop:
		s.handleTyping(env, false)
	case EventSendMessage:
		s.handleSendMessage(ctx, env)
	case EventEditMessage:
		s.handleEditMessage(ctx, env)
	case EventDeleteMessage:
		s.handleDeleteMessage(ctx, env)
	case EventMarkRead:
		s.handleMarkRead(ctx, env)
	case EventHideMessage:
		s.handleHideMessage(ctx, env)
	default:
		log.Debug().Str("event", env.Event).Str("clientID", s.client.ID).Msg("ws: unknown event ignored")
	}
}

func (s *Session) handleJoinRoom(env Envelope) {
	roomID := decodeRoomID(env.Data)
	if roomID == "" {
		return
	}
	s.hub.JoinRoom(roomID, s.client)
}

func (s *Session) handleTyping(env Envelope, isTyping bool) {
	roomID := decodeRoomID(env.Data)
	if roomID == "" {
		return
	}
	s.hub.BroadcastToRoomExceptUser(roomID, OutgoingEvent{
		Event: EventTyping,
		Data: TypingPayload{
			ChatGroupID: roomID,
			UserID:      s.client.UserID,
			IsTyping:    isTyping,
		},
	}, s.client.UserID)
}

func (s *Session) handleSendMessage(ctx context.Context, env Envelope) {
	var req chat_dto.SendMessageRequest
	if err := json.Unmarshal(env.Data, &req); err != nil || req.ChatGroupID == "" || req.Msg == "" {
		s.reply(env, errorAck("chat_group_id and msg are required."))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.reply(env, errorAck("Invalid message payload."))
		return
	}

	msg, appErr := s.service.SendMessage(ctx, req, s.client.UserID, s.client.Email)
	if appErr != nil {
		s.reply(env, errorAck(appErr.Message))
		return
	}

	s.hub.BroadcastToRoom(msg.ChatGroupID, OutgoingEvent{
		Event: EventNewMessage,
		Data:  msg,
	})
	s.reply(env, successAck(msg))
}

func (s *Session) handleEditMessage(ctx context.Context, env Envelope) {
	var req chat_dto.EditMessageRequest
	if err := json.Unmarshal(env.Data, &req); err != nil || req.ID == 0 || req.Msg == "" {
		s.reply(env, errorAck("id and msg are required."))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.reply(env, errorAck("Invalid message payload."))
		return
	}

	msg, appErr := s.service.EditMessage(ctx, req, s.client.UserID)
	if appErr != nil {
		s.reply(env, errorAck(appErr.Message))
		return
	}

	s.hub.BroadcastToRoom(msg.ChatGroupID, OutgoingEvent{
		Event: EventMessageEdited,
		Data:  msg,
	})
	s.reply(env, successAck(msg))
}

func (s *Session) handleDeleteMessage(ctx context.Context, env Envelope) {
	var req chat_dto.DeleteMessageRequest
	if err := json.Unmarshal(env.Data, &req); err != nil || req.ID == 0 {
		s.reply(env, errorAck("id is required."))
		return
	}

	msg, appErr := s.service.DeleteMessage(ctx, req, s.client.UserID)
	if appErr != nil {
		s.reply(env, errorAck(appErr.Message))
		return
	}

	s.hub.BroadcastToRoom(msg.ChatGroupID, OutgoingEvent{
		Event: EventMessageDeleted,
		Data:  msg,
	})
	s.reply(env, successAck(nil))
}

func (s *Session) handleMarkRead(ctx context.Context, env Envelope) {
	var req chat_dto.MarkReadRequest
	if err := json.Unmarshal(env.Data, &req); err != nil || len(req.IDs) == 0 || req.ChatGroupID == "" {
		s.reply(env, errorAck("ids (non-empty array) and chat_group_id are required."))
		return
	}

	if appErr := s.service.MarkMessagesRead(ctx, req, s.client.UserID); appErr != nil {
		s.reply(env, errorAck(appErr.Message))
		return
	}

	s.hub.BroadcastToRoom(req.ChatGroupID, OutgoingEvent{
		Event: EventMessagesRead,
		Data: MessagesReadPayload{
			ChatGroupID: req.ChatGroupID,
			MessageIDs:  req.IDs,
			ReaderID:    s.client.UserID,
		},
	})
	s.reply(env, successAck(nil))
}

// hide_message is caller-local: no broadcast, only the ack.
func (s *Session) handleHideMessage(ctx context.Context, env Envelope) {
	var req chat_dto.HideMessageRequest
	if err := json.Unmarshal(env.Data, &req); err != nil || req.ID == 0 {
		s.reply(env, errorAck("id is required."))
		return
	}

	if _, appErr := s.service.HideMessage(ctx, req, s.client.UserID); appErr != nil {
		s.reply(env, errorAck(appErr.Message))
		return
	}

	s.reply(env, successAck(nil))
}

func (s *Session) reply(env Envelope, ack Ack) {
	if env.AckID == 0 {
		return
	}
	s.hub.SendToClient(s.client, OutgoingEvent{
		Event: EventAck,
		AckID: env.AckID,
		Data:  ack,
	})
}
