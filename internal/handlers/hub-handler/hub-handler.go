package hub_handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	app_error "github.com/Abedalrahmansd/SSociety-API/internal/errors"
	"github.com/Abedalrahmansd/SSociety-API/internal/handlers"
	"github.com/Abedalrahmansd/SSociety-API/internal/middleware"
	"github.com/Abedalrahmansd/SSociety-API/internal/websocket"
)

type HubHandler struct {
	Hub *websocket.Hub
}

func NewHubHandler(hub *websocket.Hub) *HubHandler {
	return &HubHandler{
		Hub: hub,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	handlers.EncodeJSON(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "chat-server",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.GetHubStats()
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}
	w.Header().Set("Content-Type", "application/json")
	handlers.EncodeJSON(w, handlers.CreateResponse("get websocket stats", stats, reqID))
	return nil
}

// HandleGetRoomOnline returns the room's live presence snapshot.
func (h *HubHandler) HandleGetRoomOnline(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomID := chi.URLParam(r, "roomId")

	resp := map[string]any{
		"chat_group_id": roomID,
		"user_ids":      h.Hub.OnlineUsers(roomID),
		"stats":         h.Hub.GetRoomStats(roomID),
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	w.Header().Set("Content-Type", "application/json")
	handlers.EncodeJSON(w, handlers.CreateResponse("get room online users", resp, reqID))
	return nil
}
