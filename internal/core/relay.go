package core

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/huddle-live/huddle/internal/domain"
	"github.com/huddle-live/huddle/internal/metrics"
)

// Relay turns inbound connection events into registry mutations and
// outbound fan-out or unicast sends. It holds no lock across a send or a
// notifier call that could block; all delivery is TrySend fire-and-forget.
type Relay struct {
	rooms    *Registry
	notifier LifecycleNotifier
}

func NewRelay(rooms *Registry, notifier LifecycleNotifier) *Relay {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Relay{rooms: rooms, notifier: notifier}
}

func (e *Relay) Rooms() *Registry { return e.rooms }

// Join adds the connection to the room, sends it the pre-insertion member
// snapshot and tells everyone else about the newcomer, in that order. The
// newcomer is expected to initiate offers toward every listed peer. A join
// from a connection already in some room is tolerated as a no-op rejoin.
func (e *Relay) Join(roomID domain.RoomID, connID domain.ConnID, displayName string, conn Sender) {
	if room, ok := e.roomOf(connID); ok {
		log.Debug().Str("module", "core.relay").Str("conn", string(connID)).
			Str("room", string(room.ID())).Msg("duplicate join ignored")
		return
	}

	var (
		room  *Room
		peers []PeerInfo
	)
	for {
		room = e.rooms.GetOrCreate(roomID)
		var ok bool
		peers, ok = room.Join(connID, displayName, conn)
		if !ok {
			return
		}
		// A concurrent last-leave may have torn this room out of the
		// registry between GetOrCreate and Join. Re-resolve and retry so
		// the member never lands in an orphaned room.
		if current, exists := e.rooms.Find(roomID); exists && current == room {
			break
		}
		room.Remove(connID)
	}
	metrics.MembersActive.Inc()
	metrics.RoomsActive.Set(float64(e.rooms.RoomCount()))

	if err := conn.TrySend(EventAllUsers, peers); err != nil {
		metrics.SendsDropped.Inc()
		log.Warn().Err(err).Str("module", "core.relay").Str("conn", string(connID)).Msg("all-users send dropped")
	}
	room.Broadcast(connID, EventUserJoined, UserJoined{ConnID: connID, DisplayName: displayName})
	metrics.EventsRelayed.WithLabelValues(EventUserJoined).Inc()

	e.notifier.ParticipantJoined(roomID, connID, time.Now())
	log.Info().Str("module", "core.relay").Str("conn", string(connID)).
		Str("room", string(roomID)).Str("name", displayName).Msg("joined room")
}

// Unicast forwards an addressed signaling event to exactly one connection.
// A target that is no longer in any room is a silent drop: signaling races
// with disconnect are expected and the initiator will see user-left instead.
func (e *Relay) Unicast(event string, to domain.ConnID, payload any) {
	sender, ok := e.senderOf(to)
	if !ok {
		log.Debug().Str("module", "core.relay").Str("event", event).
			Str("to", string(to)).Msg("unicast target gone, dropped")
		return
	}
	if err := sender.TrySend(event, payload); err != nil {
		metrics.SendsDropped.Inc()
		return
	}
	metrics.EventsRelayed.WithLabelValues(event).Inc()
}

// Chat broadcasts a transient chat message to every other room member.
func (e *Relay) Chat(roomID domain.RoomID, from domain.ConnID, displayName, message string) {
	room, ok := e.rooms.Find(roomID)
	if !ok {
		return
	}
	room.Broadcast(from, EventChatMessage, ChatMessage{
		Message:     message,
		DisplayName: displayName,
		ConnID:      from,
		Timestamp:   time.Now(),
	})
	metrics.EventsRelayed.WithLabelValues(EventChatMessage).Inc()
}

// RaiseHand marks the sender's hand and tells the rest of the room.
func (e *Relay) RaiseHand(roomID domain.RoomID, from domain.ConnID, displayName string) {
	room, ok := e.rooms.Find(roomID)
	if !ok {
		return
	}
	room.RaiseHand(from)
	room.Broadcast(from, EventHandRaised, HandRaised{ConnID: from, DisplayName: displayName})
	metrics.EventsRelayed.WithLabelValues(EventHandRaised).Inc()
}

// SetAudio records the sender's new audio state before broadcasting it, so
// later room-state reads observe the updated flag. A toggle from a
// connection outside the room mutates nothing but is not an error.
func (e *Relay) SetAudio(roomID domain.RoomID, from domain.ConnID, enabled bool) {
	e.toggle(roomID, from, EventAudioToggle, enabled, (*Room).SetAudio)
}

func (e *Relay) SetVideo(roomID domain.RoomID, from domain.ConnID, enabled bool) {
	e.toggle(roomID, from, EventVideoToggle, enabled, (*Room).SetVideo)
}

func (e *Relay) toggle(roomID domain.RoomID, from domain.ConnID, event string, enabled bool, set func(*Room, domain.ConnID, bool) bool) {
	room, ok := e.rooms.Find(roomID)
	if !ok {
		return
	}
	set(room, from, enabled)
	room.Broadcast(from, event, MediaToggle{ConnID: from, Enabled: enabled})
	metrics.EventsRelayed.WithLabelValues(event).Inc()
}

// Leave removes the connection from the named room.
func (e *Relay) Leave(roomID domain.RoomID, connID domain.ConnID) {
	room, ok := e.rooms.Find(roomID)
	if !ok {
		return
	}
	e.removeFromRoom(room, connID)
}

// Disconnect runs leave cleanup in every room holding the connection. The
// transport cannot name the room on an abrupt close, so this is the one
// path that scans; concurrent room counts stay small enough for that.
// Only one room's lock is held at a time.
func (e *Relay) Disconnect(connID domain.ConnID) {
	for _, room := range e.rooms.Rooms() {
		if room.Has(connID) {
			e.removeFromRoom(room, connID)
		}
	}
}

func (e *Relay) removeFromRoom(room *Room, connID domain.ConnID) {
	member, empty, ok := room.Remove(connID)
	if !ok {
		return
	}
	metrics.MembersActive.Dec()

	if empty {
		if e.rooms.RemoveIfEmpty(room.ID()) {
			e.notifier.RoomDeactivated(room.ID())
			log.Info().Str("module", "core.relay").Str("room", string(room.ID())).Msg("room deactivated")
		}
		metrics.RoomsActive.Set(float64(e.rooms.RoomCount()))
		return
	}

	room.Broadcast(connID, EventUserLeft, UserLeft{ConnID: member.ConnID, DisplayName: member.DisplayName})
	metrics.EventsRelayed.WithLabelValues(EventUserLeft).Inc()
	log.Info().Str("module", "core.relay").Str("conn", string(connID)).
		Str("room", string(room.ID())).Msg("left room")
}

func (e *Relay) roomOf(connID domain.ConnID) (*Room, bool) {
	for _, room := range e.rooms.Rooms() {
		if room.Has(connID) {
			return room, true
		}
	}
	return nil, false
}

func (e *Relay) senderOf(connID domain.ConnID) (Sender, bool) {
	for _, room := range e.rooms.Rooms() {
		if sender, ok := room.SenderOf(connID); ok {
			return sender, true
		}
	}
	return nil, false
}
