package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/huddle-live/huddle/internal/adapters/signal"
	"github.com/huddle-live/huddle/internal/config"
	"github.com/huddle-live/huddle/internal/core"
	"github.com/huddle-live/huddle/internal/metrics"
	"github.com/huddle-live/huddle/internal/store"
)

// ClientTokenMiddleware assigns each browser a stable connection token via
// cookie. The token doubles as the signaling connection id.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = uuid.NewString()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, relay *core.Relay, db *store.Postgres) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	sessionStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("HuddleSessions", sessionStore))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	rooms := &RoomHandlers{DB: db, ClientURL: cfg.ClientURL}
	ws := signal.NewSignalWSController(relay, cfg.ReadLimit, cfg.PingPeriod)

	api := r.Group("/api")
	api.POST("/room/create", rooms.Create)
	api.GET("/room/:id/join", rooms.Join)
	api.GET("/webrtc/config", ICEConfigHandler(cfg))
	api.GET("/ws/signal", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString("client_token")).Msg("ws signal endpoint hit")
		ws.HandleSignal(ctx, c)
	})

	return r
}
