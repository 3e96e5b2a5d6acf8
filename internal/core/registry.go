package core

import (
	"sync"

	"github.com/huddle-live/huddle/internal/domain"
)

// Registry owns the roomID to Room mapping. It is a cache of live
// membership only; the durable store remains the source of truth for room
// existence. Lock order: registry before room, never the other way.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]*Room)}
}

// GetOrCreate returns the existing room or inserts an empty one.
func (g *Registry) GetOrCreate(id domain.RoomID) *Room {
	g.mu.RLock()
	room, ok := g.rooms[id]
	g.mu.RUnlock()
	if ok {
		return room
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok = g.rooms[id]; ok {
		return room
	}
	room = NewRoom(id)
	g.rooms[id] = room
	return room
}

// Find is a read-only lookup.
func (g *Registry) Find(id domain.RoomID) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[id]
	return room, ok
}

// RemoveIfEmpty drops the room only when its member set is still empty.
// Rechecking under the registry lock closes the race with a join that got
// the room from GetOrCreate just before the last member left.
func (g *Registry) RemoveIfEmpty(id domain.RoomID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[id]
	if !ok || room.MemberCount() > 0 {
		return false
	}
	delete(g.rooms, id)
	return true
}

// Rooms snapshots the current room set, used by the disconnect scan.
func (g *Registry) Rooms() []*Room {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Room, 0, len(g.rooms))
	for _, room := range g.rooms {
		out = append(out, room)
	}
	return out
}

func (g *Registry) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}
