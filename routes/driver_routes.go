package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupDriverRoutes sets up routes for the mirrored fleet
func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler, jwtSecret string) {
	drivers := r.Group("/drivers")
	drivers.Use(middleware.AuthRequired(jwtSecret))
	{
		drivers.GET("", driverHandler.ListDrivers)
		drivers.GET("/summary", driverHandler.GetFleetSummary)
		drivers.GET("/:id", driverHandler.GetDriver)
		drivers.GET("/:id/metrics", driverHandler.GetDriverMetrics)
		drivers.GET("/:id/alerts", driverHandler.GetDriverAlerts)
		drivers.GET("/:id/evaluate", driverHandler.EvaluateDriver)
	}

	managed := r.Group("/drivers")
	managed.Use(middleware.AuthRequired(jwtSecret), middleware.ManagerRequired())
	{
		managed.PATCH("/:id", driverHandler.UpdateDriver)
		managed.PUT("/:id/status", driverHandler.UpdateDriverStatus)
	}
}
