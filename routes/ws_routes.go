package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupWSRoutes sets up the fleet event feed
func SetupWSRoutes(r *gin.RouterGroup, wsHandler *handlers.WSHandler, jwtSecret string) {
	ws := r.Group("/ws")
	ws.Use(middleware.WSAuthRequired(jwtSecret))
	{
		ws.GET("", wsHandler.Connect)
	}
}
