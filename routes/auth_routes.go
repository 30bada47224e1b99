package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupAuthRoutes sets up authentication routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler, jwtSecret string) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	profile := r.Group("/auth")
	profile.Use(middleware.AuthRequired(jwtSecret))
	{
		profile.GET("/me", authHandler.GetProfile)
	}
}
