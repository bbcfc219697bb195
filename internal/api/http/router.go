package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cardclash/internal/api/ws"
)

type RouterDeps struct {
	Rooms     RoomReader
	Results   ResultReader
	Hub       *ws.Hub
	PublicDir string
	Log       *zap.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	// WebSocket for live play
	if d.Hub != nil {
		r.GET("/ws", d.Hub.HandleWS)
	}

	r.GET("/healthz", HealthHandler(d.Rooms))

	api := r.Group("/api")
	api.GET("/leaderboard", LeaderboardHandler(d.Results, log))
	api.GET("/rooms/:id", RoomStateHandler(d.Rooms))
	api.GET("/rooms/:id/results", RoomResultsHandler(d.Results, log))

	if d.PublicDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(d.PublicDir))))
	}
	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client", c.ClientIP()),
		)
	}
}
