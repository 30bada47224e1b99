package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupAdminRoutes sets up admin-only routes
func SetupAdminRoutes(r *gin.RouterGroup, adminHandler *handlers.AdminHandler, jwtSecret string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		admin.GET("/db", adminHandler.InspectDatabase)
	}
}
