package core

import (
	"time"

	"github.com/huddle-live/huddle/internal/domain"
)

// Sender is the outbound half of one client connection.
// Owned by the adapter; the adapter must Close() the underlying socket.
// TrySend must never block: drop and return an error instead.
type Sender interface {
	TrySend(event string, payload any) error
}

// LifecycleNotifier is the durable-store hook informed of room activity.
// Implementations must return immediately; persistence happens off the
// relay path and failures are logged there, never surfaced here.
type LifecycleNotifier interface {
	ParticipantJoined(roomID domain.RoomID, connID domain.ConnID, at time.Time)
	RoomDeactivated(roomID domain.RoomID)
}

// NopNotifier satisfies LifecycleNotifier when no durable store is wired,
// e.g. in tests.
type NopNotifier struct{}

func (NopNotifier) ParticipantJoined(domain.RoomID, domain.ConnID, time.Time) {}
func (NopNotifier) RoomDeactivated(domain.RoomID)                             {}
