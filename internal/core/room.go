package core

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/huddle-live/huddle/internal/domain"
)

type memberEntry struct {
	member *domain.Member
	conn   Sender
}

// Room is a threadsafe in-memory member set for one signaling session.
// It never closes adapter-owned connections. Iteration follows join order
// so snapshots and fan-outs are deterministic.
type Room struct {
	id domain.RoomID

	mu      sync.RWMutex
	members map[domain.ConnID]*memberEntry
	order   []domain.ConnID
}

func NewRoom(id domain.RoomID) *Room {
	return &Room{
		id:      id,
		members: make(map[domain.ConnID]*memberEntry),
	}
}

func (r *Room) ID() domain.RoomID { return r.id }

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *Room) Has(id domain.ConnID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[id]
	return ok
}

// Join atomically snapshots the current members and inserts the newcomer.
// The returned slice is the pre-insertion view: it never contains the
// joiner itself. ok is false when the connection is already a member, in
// which case nothing is mutated.
func (r *Room) Join(id domain.ConnID, displayName string, conn Sender) (peers []PeerInfo, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.members[id]; exists {
		return nil, false
	}
	peers = make([]PeerInfo, 0, len(r.members))
	for _, mid := range r.order {
		m := r.members[mid].member
		peers = append(peers, PeerInfo{ConnID: m.ConnID, DisplayName: m.DisplayName})
	}
	r.members[id] = &memberEntry{member: domain.NewMember(id, displayName), conn: conn}
	r.order = append(r.order, id)
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(id)).Msg("member added")
	return peers, true
}

// Remove deletes the member and reports whether the room is now empty.
// Removing an absent member is a safe no-op (ok=false).
func (r *Room) Remove(id domain.ConnID) (member *domain.Member, empty, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, exists := r.members[id]
	if !exists {
		return nil, len(r.members) == 0, false
	}
	delete(r.members, id)
	for i, mid := range r.order {
		if mid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("conn", string(id)).Msg("member removed")
	return entry.member, len(r.members) == 0, true
}

// SenderOf returns the outbound endpoint for a current member.
func (r *Room) SenderOf(id domain.ConnID) (Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.members[id]
	if !ok {
		return nil, false
	}
	return entry.conn, true
}

// PublishResult reports delivery stats for one fan-out.
type PublishResult struct {
	SentTo  int
	Dropped int
}

// Broadcast fans an event out to every member except from. Sends use
// TrySend and never block; slow receivers just miss the event.
func (r *Room) Broadcast(from domain.ConnID, event string, payload any) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for _, id := range r.order {
		if id == from {
			continue
		}
		if err := r.members[id].conn.TrySend(event, payload); err != nil {
			res.Dropped++
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("event", event).
		Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Msg("broadcast result")
	return res
}

// SetAudio updates the member's audio flag. Last write wins; a toggle from
// a connection that is not a member mutates nothing.
func (r *Room) SetAudio(id domain.ConnID, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.members[id]
	if !ok {
		return false
	}
	entry.member.AudioEnabled = enabled
	return true
}

func (r *Room) SetVideo(id domain.ConnID, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.members[id]
	if !ok {
		return false
	}
	entry.member.VideoEnabled = enabled
	return true
}

func (r *Room) RaiseHand(id domain.ConnID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.members[id]
	if !ok {
		return false
	}
	entry.member.HandRaised = true
	return true
}

// Member returns a copy of the member's current state.
func (r *Room) Member(id domain.ConnID) (domain.Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.members[id]
	if !ok {
		return domain.Member{}, false
	}
	return *entry.member, true
}

// Members returns the current member views in join order.
func (r *Room) Members() []PeerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PeerInfo, 0, len(r.members))
	for _, id := range r.order {
		m := r.members[id].member
		out = append(out, PeerInfo{ConnID: m.ConnID, DisplayName: m.DisplayName})
	}
	return out
}
