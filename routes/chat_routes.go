package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupChatRoutes sets up the AI assistant routes
func SetupChatRoutes(r *gin.RouterGroup, chatHandler *handlers.ChatHandler, jwtSecret string) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthRequired(jwtSecret))
	{
		chat.POST("", chatHandler.StreamChat)
	}
}
