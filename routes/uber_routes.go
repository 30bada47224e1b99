package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupUberRoutes sets up the platform integration endpoints
func SetupUberRoutes(r *gin.RouterGroup, uberHandler *handlers.UberHandler, jwtSecret string) {
	uber := r.Group("/uber")
	uber.Use(middleware.AuthRequired(jwtSecret))
	{
		uber.GET("/sync", uberHandler.GetStatus)
	}

	managed := r.Group("/uber")
	managed.Use(middleware.AuthRequired(jwtSecret), middleware.ManagerRequired())
	{
		managed.POST("/sync", uberHandler.HandleAction)
	}
}
