package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/huddle-live/huddle/internal/domain"
	"github.com/huddle-live/huddle/internal/store"
)

// RoomHandlers is the REST surface for durable room records. Rooms are
// created here; the relay only ever sees them once someone joins over the
// websocket.
type RoomHandlers struct {
	DB        *store.Postgres
	ClientURL string
}

func (h *RoomHandlers) Create(c *gin.Context) {
	roomID := domain.RoomID(uuid.NewString())
	if err := h.DB.CreateRoom(c.Request.Context(), roomID); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("room create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"roomId": roomID,
		"url":    fmt.Sprintf("%s/room/%s", h.ClientURL, roomID),
	})
}

func (h *RoomHandlers) Join(c *gin.Context) {
	roomID := domain.RoomID(c.Param("id"))
	active, err := h.DB.RoomActive(c.Request.Context(), roomID)
	if err != nil && !errors.Is(err, store.ErrRoomNotFound) {
		log.Error().Err(err).Str("module", "adapters.http").Str("room", string(roomID)).Msg("room lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join room"})
		return
	}
	if err != nil || !active {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roomId": roomID, "exists": true})
}
