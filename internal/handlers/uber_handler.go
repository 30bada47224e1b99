package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
)

// UberHandler fronts the platform integration: sync status plus a
// single action endpoint discriminated by the request body.
type UberHandler struct {
	syncService   services.SyncService
	reportService services.ReportService
}

func NewUberHandler(syncService services.SyncService, reportService services.ReportService) *UberHandler {
	return &UberHandler{
		syncService:   syncService,
		reportService: reportService,
	}
}

// GetStatus returns integration state and recent sync history
func (h *UberHandler) GetStatus(c *gin.Context) {
	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Sync status retrieved", status)
}

// HandleAction dispatches on the action discriminator
func (h *UberHandler) HandleAction(c *gin.Context) {
	var request validators.UberActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUberActionRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	switch request.Action {
	case "sync_driver":
		h.syncDriver(c, &request)
	case "sync_all":
		h.syncAll(c)
	case "generate_report":
		h.generateReport(c, &request)
	case "report_status":
		h.reportStatus(c, &request)
	}
}

func (h *UberHandler) syncDriver(c *gin.Context, request *validators.UberActionRequest) {
	result, err := h.syncService.SyncDriver(c.Request.Context(), request.DriverID)
	if err != nil {
		h.integrationError(c, err, "Driver")
		return
	}

	utils.SuccessResponse(c, "Driver synced", result)
}

func (h *UberHandler) syncAll(c *gin.Context) {
	result, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		h.integrationError(c, err, "Fleet")
		return
	}

	utils.SuccessResponse(c, "Fleet sync completed", result)
}

func (h *UberHandler) generateReport(c *gin.Context, request *validators.UberActionRequest) {
	start, err := time.Parse("2006-01-02", request.StartDate)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid start_date")
		return
	}
	end, err := time.Parse("2006-01-02", request.EndDate)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid end_date")
		return
	}
	if end.Before(start) {
		utils.BadRequestResponse(c, "end_date must not precede start_date")
		return
	}

	report, err := h.reportService.Generate(c.Request.Context(), c.GetString("user_id"), "fleet_activity", start, end)
	if err != nil {
		h.integrationError(c, err, "Report")
		return
	}

	utils.CreatedResponse(c, "Report generation requested", report)
}

func (h *UberHandler) reportStatus(c *gin.Context, request *validators.UberActionRequest) {
	report, err := h.reportService.GetByUberReportID(c.Request.Context(), request.ReportID)
	if err != nil {
		h.integrationError(c, err, "Report")
		return
	}

	utils.SuccessResponse(c, "Report status retrieved", report)
}

func (h *UberHandler) integrationError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrSyncNotConfigured):
		utils.ServiceUnavailableResponse(c, "Uber integration is not configured")
	case errors.Is(err, interfaces.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	default:
		utils.ErrorResponse(c, http.StatusBadGateway, "INTEGRATION_ERROR", "Platform request failed")
	}
}
