package routes

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/internal/handlers"
	"fleetpulse/internal/middleware"
)

// SetupReportRoutes sets up report tracking routes
func SetupReportRoutes(r *gin.RouterGroup, reportHandler *handlers.ReportHandler, jwtSecret string) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthRequired(jwtSecret))
	{
		reports.GET("", reportHandler.ListReports)
		reports.GET("/:id", reportHandler.GetReport)
	}
}
