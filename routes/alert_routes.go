package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupAlertRoutes sets up alert rule and dispatch routes
func SetupAlertRoutes(r *gin.RouterGroup, alertHandler *handlers.AlertHandler, jwtSecret string) {
	alerts := r.Group("/alerts")
	alerts.Use(middleware.AuthRequired(jwtSecret))
	{
		alerts.GET("/rules", alertHandler.ListRules)
		alerts.GET("/rules/:id", alertHandler.GetRule)
		alerts.GET("/events", alertHandler.ListEvents)
	}

	managed := r.Group("/alerts")
	managed.Use(middleware.AuthRequired(jwtSecret), middleware.ManagerRequired())
	{
		managed.POST("/rules", alertHandler.CreateRule)
		managed.PATCH("/rules/:id", alertHandler.UpdateRule)
		managed.DELETE("/rules/:id", alertHandler.DeleteRule)
		managed.POST("/preview", alertHandler.PreviewAlert)
		managed.POST("/dispatch", alertHandler.DispatchAlert)
	}
}
