package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/huddle-live/huddle/internal/domain"
)

// Notifier is the Postgres-backed lifecycle hook. Calls from the relay
// enqueue and return immediately; a single worker drains the queue so the
// relay path never waits on the database. A full queue drops the update
// with a warning rather than applying backpressure.
type Notifier struct {
	db    *Postgres
	tasks chan task
}

type task func(ctx context.Context)

func NewNotifier(db *Postgres) *Notifier {
	return &Notifier{
		db:    db,
		tasks: make(chan task, 256),
	}
}

// Run drains the queue until ctx is canceled. A failing task never takes
// the worker down; the relay keeps going either way.
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-n.tasks:
			n.runTask(ctx, t)
		}
	}
}

func (n *Notifier) runTask(ctx context.Context, t task) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("module", "store.notifier").Msg("lifecycle task panicked")
		}
	}()
	t(ctx)
}

func (n *Notifier) enqueue(what string, t task) {
	select {
	case n.tasks <- t:
	default:
		log.Warn().Str("module", "store.notifier").Str("update", what).Msg("queue full, lifecycle update dropped")
	}
}

func (n *Notifier) ParticipantJoined(roomID domain.RoomID, connID domain.ConnID, at time.Time) {
	n.enqueue("participant_joined", func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := n.db.AddParticipant(ctx, roomID, connID, at); err != nil {
			log.Error().Err(err).Str("module", "store.notifier").
				Str("room", string(roomID)).Str("conn", string(connID)).Msg("participant update failed")
		}
	})
}

func (n *Notifier) RoomDeactivated(roomID domain.RoomID) {
	n.enqueue("room_deactivated", func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := n.db.DeactivateRoom(ctx, roomID); err != nil {
			log.Error().Err(err).Str("module", "store.notifier").
				Str("room", string(roomID)).Msg("deactivate update failed")
		}
	})
}
