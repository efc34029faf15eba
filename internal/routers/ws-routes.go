package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Abedalrahmansd/SSociety-API/internal/websocket"
)

func WSRouter(r chi.Router, wsHandler *websocket.WebSocketHandler) {
	r.Get("/ws", wsHandler.ServeWS)
}
