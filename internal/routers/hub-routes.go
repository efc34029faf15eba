package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Abedalrahmansd/SSociety-API/internal/handlers"
	hub_handler "github.com/Abedalrahmansd/SSociety-API/internal/handlers/hub-handler"
	"github.com/Abedalrahmansd/SSociety-API/internal/websocket"
)

func HubRouter(r chi.Router, wsHub *websocket.Hub) {
	hubHandler := hub_handler.NewHubHandler(wsHub)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", hubHandler.HandleHealth)
		r.Get("/stats", handlers.WrapHandler(hubHandler.HandleGetStats))
		r.Get("/rooms/{roomId}/online", handlers.WrapHandler(hubHandler.HandleGetRoomOnline))
	})
}
