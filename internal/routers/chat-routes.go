package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Abedalrahmansd/SSociety-API/internal/handlers"
	chat_handler "github.com/Abedalrahmansd/SSociety-API/internal/handlers/chat-handler"
	"github.com/Abedalrahmansd/SSociety-API/internal/middleware"
	"github.com/Abedalrahmansd/SSociety-API/state"
)

func ChatRouter(r chi.Router, appState *state.AppState) {
	chatHandler := chat_handler.NewChatHandler(appState)
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(appState.JwtSecret.Public))
		protected.Get("/api/v1/messages", handlers.WrapHandler(chatHandler.GetMessages))
	})
}
