package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Abedalrahmansd/SSociety-API/internal/middleware"
	"github.com/Abedalrahmansd/SSociety-API/internal/websocket"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

func NewRouter(appState *state.AppState, wsHub *websocket.Hub, wsHandler *websocket.WebSocketHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	ChatRouter(r, appState)
	HubRouter(r, wsHub)
	WSRouter(r, wsHandler)
	return r
}
