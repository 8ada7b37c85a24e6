package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IdoSagiv/connect-four/internal/transport/http/middleware"
)

// NewRouter builds the read-only spectator API. ws handles GET /ws.
func NewRouter(watch *WatchHandler, ws http.HandlerFunc, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/api/match", watch.GetMatch)
	router.GET("/api/scores", watch.GetScores)
	router.GET("/ws", gin.WrapF(ws))

	return router
}
