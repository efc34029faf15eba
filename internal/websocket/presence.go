package websocket

import (
	"sort"
	"sync"
)

// Presence tracks which users are currently joined to which rooms. It is
// process-local and rebuilt from zero on restart; nothing here is persisted.
// All operations are synchronous set mutations under one lock.
type Presence struct {
	mu    sync.RWMutex
	rooms map[string]map[int64]struct{}
}

func NewPresence() *Presence {
	return &Presence{
		rooms: make(map[string]map[int64]struct{}),
	}
}

// Join adds the user to the room's presence set. Idempotent; reports whether
// this was the user's first membership in the room.
func (p *Presence) Join(roomID string, userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	users, ok := p.rooms[roomID]
	if !ok {
		users = make(map[int64]struct{})
		p.rooms[roomID] = users
	}

	if _, exists := users[userID]; exists {
		return false
	}
	users[userID] = struct{}{}
	return true
}

// Leave removes the user from the room, pruning the room entry when it
// empties. Reports whether the user was actually present.
func (p *Presence) Leave(roomID string, userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	users, ok := p.rooms[roomID]
	if !ok {
		return false
	}
	if _, exists := users[userID]; !exists {
		return false
	}

	delete(users, userID)
	if len(users) == 0 {
		delete(p.rooms, roomID)
	}
	return true
}

// LeaveAll removes the user from every room and returns the rooms they
// actually left. Called on disconnect.
func (p *Presence) LeaveAll(userID int64) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var left []string
	for roomID, users := range p.rooms {
		if _, exists := users[userID]; !exists {
			continue
		}
		delete(users, userID)
		if len(users) == 0 {
			delete(p.rooms, roomID)
		}
		left = append(left, roomID)
	}
	return left
}

// Snapshot returns the room's current members as of the moment of the call.
func (p *Presence) Snapshot(roomID string) []int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	users := p.rooms[roomID]
	ids := make([]int64, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (p *Presence) RoomCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.rooms)
}

func (p *Presence) UserCount(roomID string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.rooms[roomID])
}
