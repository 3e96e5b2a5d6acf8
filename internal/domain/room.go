// Package domain contains entity without logic, just meta-data
package domain

type (
	// RoomID names a signaling session. Opaque to the relay; the HTTP layer
	// mints them as UUIDs but any non-empty string works.
	RoomID string

	// ConnID identifies one client connection for its whole lifetime.
	ConnID string
)
