// Package store persists room records in Postgres. It backs the HTTP room
// CRUD and the relay's lifecycle notifications; the in-memory registry
// never depends on it for correctness.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/huddle-live/huddle/internal/domain"
)

var ErrRoomNotFound = errors.New("room not found")

type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to postgres and returns a pool wrapper.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() { p.pool.Close() }

// Migrate ensures the schema exists. Idempotent, run at startup.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS rooms (
			room_id    text PRIMARY KEY,
			created_at timestamptz NOT NULL DEFAULT now(),
			active     boolean NOT NULL DEFAULT true
		);
		CREATE TABLE IF NOT EXISTS room_participants (
			id        bigserial PRIMARY KEY,
			room_id   text NOT NULL REFERENCES rooms(room_id),
			conn_id   text NOT NULL,
			joined_at timestamptz NOT NULL,
			left_at   timestamptz
		);
		CREATE INDEX IF NOT EXISTS room_participants_room_idx
			ON room_participants(room_id);
	`)
	return err
}

// CreateRoom inserts a new active room record.
func (p *Postgres) CreateRoom(ctx context.Context, roomID domain.RoomID) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO rooms (room_id) VALUES ($1)`, string(roomID))
	return err
}

// RoomActive reports whether the room exists and has not been deactivated.
func (p *Postgres) RoomActive(ctx context.Context, roomID domain.RoomID) (bool, error) {
	var active bool
	err := p.pool.QueryRow(ctx,
		`SELECT active FROM rooms WHERE room_id = $1`, string(roomID)).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, ErrRoomNotFound
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

// AddParticipant appends a join record for the room.
func (p *Postgres) AddParticipant(ctx context.Context, roomID domain.RoomID, connID domain.ConnID, joinedAt time.Time) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO room_participants (room_id, conn_id, joined_at) VALUES ($1, $2, $3)`,
		string(roomID), string(connID), joinedAt)
	return err
}

// DeactivateRoom marks the room inactive and closes open participant rows.
func (p *Postgres) DeactivateRoom(ctx context.Context, roomID domain.RoomID) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE rooms SET active = false WHERE room_id = $1`, string(roomID))
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`UPDATE room_participants SET left_at = now() WHERE room_id = $1 AND left_at IS NULL`,
		string(roomID))
	return err
}
