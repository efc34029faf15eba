package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Hub fans events out to the connections joined to each room and couples
// connection membership with the presence tracker. Broadcasts are
// fire-and-forget: delivery is at-most-once to currently-connected members.
type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex

	presence *Presence

	stats   HubStats
	statsMu sync.RWMutex
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	MessagesSent     int64     `json:"messages_sent"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub(presence *Presence) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		presence: presence,
		stats: HubStats{
			LastReset: time.Now(),
		},
	}
}

// ClientConnected bumps the lifetime connection counter.
func (h *Hub) ClientConnected() {
	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})
}

// JoinRoom registers the connection in the room, updates presence, notifies
// the rest of the room on first membership and hands the joiner the current
// member snapshot.
func (h *Hub) JoinRoom(roomID string, client *Client) {
	h.mu.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][client] = struct{}{}
	client.rooms[roomID] = struct{}{}
	roomSize := len(h.rooms[roomID])
	h.mu.Unlock()

	first := h.presence.Join(roomID, client.UserID)
	if first {
		h.BroadcastToRoomExceptUser(roomID, OutgoingEvent{
			Event: EventUserOnline,
			Data:  UserStatusPayload{ChatGroupID: roomID, UserID: client.UserID},
		}, client.UserID)
	}

	h.SendToClient(client, OutgoingEvent{
		Event: EventOnlineUsers,
		Data:  OnlineUsersPayload{ChatGroupID: roomID, UserIDs: h.presence.Snapshot(roomID)},
	})

	log.Info().Str("roomID", roomID).Str("clientID", client.ID).Int64("userID", client.UserID).Int("roomSize", roomSize).Msg("ws: client joined room")
}

// RemoveClient unregisters the connection from every room it joined. When
// the user's last connection leaves a room, presence is updated and the room
// is told. Runs on every disconnect, failures elsewhere notwithstanding.
func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	roomIDs := make([]string, 0, len(client.rooms))
	for roomID := range client.rooms {
		roomIDs = append(roomIDs, roomID)
		if clients, ok := h.rooms[roomID]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	client.rooms = make(map[string]struct{})
	h.mu.Unlock()

	for _, roomID := range roomIDs {
		if h.isUserConnectedInRoom(roomID, client.UserID) {
			continue
		}
		if h.presence.Leave(roomID, client.UserID) {
			h.BroadcastToRoomExceptUser(roomID, OutgoingEvent{
				Event: EventUserOffline,
				Data:  UserStatusPayload{ChatGroupID: roomID, UserID: client.UserID},
			}, client.UserID)
		}
	}

	log.Info().Str("clientID", client.ID).Int64("userID", client.UserID).Int("rooms", len(roomIDs)).Msg("ws: client unregistered")
}

func (h *Hub) isUserConnectedInRoom(roomID string, userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if client.UserID == userID && client.IsActive() {
			return true
		}
	}
	return false
}

// BroadcastToRoom sends an event to every connection in the room, the
// originator included.
func (h *Hub) BroadcastToRoom(roomID string, event OutgoingEvent) {
	h.broadcastInternal(roomID, event, nil)
}

// BroadcastToRoomExceptUser sends an event to the room, skipping every
// connection of the given user.
func (h *Hub) BroadcastToRoomExceptUser(roomID string, event OutgoingEvent, exceptUserID int64) {
	h.broadcastInternal(roomID, event, func(c *Client) bool {
		return c.UserID == exceptUserID
	})
}

func (h *Hub) broadcastInternal(roomID string, event OutgoingEvent, skip func(*Client) bool) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("ws: failed to marshal broadcast event")
		return
	}

	h.mu.RLock()
	var targets []*Client
	for client := range h.rooms[roomID] {
		if skip != nil && skip(client) {
			continue
		}
		if client.IsActive() {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	for _, client := range targets {
		select {
		case client.Send <- data:
		case <-client.ctx.Done():
		default:
			// Slow consumer: drop the frame and reap the connection.
			log.Warn().Str("roomID", roomID).Str("clientID", client.ID).Msg("ws: slow consumer, dropping event")
			go client.Close()
		}
	}

	h.updateStats(func(stats *HubStats) {
		stats.MessagesSent += int64(len(targets))
	})

	log.Debug().Str("roomID", roomID).Int("targets", len(targets)).Str("event", event.Event).Msg("ws: broadcast completed")
}

// SendToClient delivers an event to a single connection: the direct-reply
// path for acks and snapshots, distinct from the broadcast channel.
func (h *Hub) SendToClient(client *Client, event OutgoingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("clientID", client.ID).Msg("ws: failed to marshal client event")
		return
	}

	select {
	case client.Send <- data:
	case <-client.ctx.Done():
	default:
		log.Warn().Str("clientID", client.ID).Msg("ws: client buffer full, dropping reply")
	}
}

// OnlineUsers returns the room's presence snapshot.
func (h *Hub) OnlineUsers(roomID string) []int64 {
	return h.presence.Snapshot(roomID)
}

func (h *Hub) GetHubStats() HubStats {
	h.mu.RLock()
	totalClients := 0
	for _, clients := range h.rooms {
		for client := range clients {
			if client.IsActive() {
				totalClients++
			}
		}
	}
	totalRooms := len(h.rooms)
	h.mu.RUnlock()

	h.statsMu.RLock()
	stats := h.stats
	h.statsMu.RUnlock()

	stats.TotalRooms = totalRooms
	stats.TotalClients = totalClients
	return stats
}

func (h *Hub) GetRoomStats(roomID string) map[string]any {
	h.mu.RLock()
	clients, exists := h.rooms[roomID]
	connections := len(clients)
	h.mu.RUnlock()

	return map[string]any{
		"room_id":      roomID,
		"exists":       exists,
		"connections":  connections,
		"online_users": h.presence.UserCount(roomID),
	}
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

// Close shuts every connection down.
func (h *Hub) Close() {
	h.mu.RLock()
	var allClients []*Client
	for _, clients := range h.rooms {
		for client := range clients {
			allClients = append(allClients, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range allClients {
		client.Close()
	}

	log.Info().Int("clients", len(allClients)).Msg("ws: hub shutdown completed")
}
