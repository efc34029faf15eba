package websocket

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
	chat_service "github.com/Abedalrahmansd/SSociety-API/internal/use-case/chat-case"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

type AuthenticatorFunc func(r *http.Request) (*Identity, error)

type WebSocketHandler struct {
	Hub           *Hub
	authenticator AuthenticatorFunc
	service       chat_service.ChatServiceContract
	validate      *validator.Validate
}

func NewWebSocketHandler(hub *Hub, authenticator AuthenticatorFunc, service chat_service.ChatServiceContract) *WebSocketHandler {
	return &WebSocketHandler{
		Hub:           hub,
		authenticator: authenticator,
		service:       service,
		validate:      validator.New(),
	}
}

// ServeWS authenticates the handshake and only then upgrades. A rejected
// connection never gets a session; there is no partially-authenticated state.
func (h *WebSocketHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	identity, err := h.authenticator(r)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("ws: handshake rejected")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = app_error.NewAuthenticationError(err.Error()).JSON(w)
		return
	}

	conn, upErr := upgrader.Upgrade(w, r, nil)
	if upErr != nil {
		log.Error().Err(upErr).Msg("ws: upgrade failed")
		return
	}

	client := newClient(h.Hub, conn, identity)
	client.session = NewSession(h.Hub, client, h.service, h.validate)

	h.Hub.ClientConnected()
	client.Start()

	log.Info().Str("clientID", client.ID).Int64("userID", client.UserID).Msg("ws: client connected")
}
