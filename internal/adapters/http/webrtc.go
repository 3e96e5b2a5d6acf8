package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"

	"github.com/huddle-live/huddle/internal/config"
)

// iceServersFromConfig builds the client-facing ICE server list. STUN urls
// are collapsed into one credential-free entry; TURN gets its own entry
// only when fully configured, since partial TURN credentials are useless
// to the browser.
func iceServersFromConfig(cfg *config.Config) []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, 2)
	if len(cfg.STUNURLs) > 0 {
		out = append(out, webrtc.ICEServer{URLs: cfg.STUNURLs})
	}
	if cfg.TURNURL != "" && cfg.TURNUsername != "" && cfg.TURNPassword != "" {
		out = append(out, webrtc.ICEServer{
			URLs:       []string{cfg.TURNURL},
			Username:   cfg.TURNUsername,
			Credential: cfg.TURNPassword,
		})
	}
	return out
}

// ICEConfigHandler serves the RTCConfiguration clients pass to their
// peer connections. The relay itself never dials these servers.
func ICEConfigHandler(cfg *config.Config) gin.HandlerFunc {
	servers := iceServersFromConfig(cfg)
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	}
}
