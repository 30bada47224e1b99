package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetpulse/internal/models"
	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
)

type DriverHandler struct {
	driverService services.DriverService
	alertService  services.AlertService
}

func NewDriverHandler(driverService services.DriverService, alertService services.AlertService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		alertService:  alertService,
	}
}

// ListDrivers returns the mirrored fleet, optionally filtered by status
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := c.Query("status")
	if status != "" && status != "active" && status != "inactive" && status != "suspended" {
		utils.BadRequestResponse(c, "Invalid status filter")
		return
	}

	drivers, meta, err := h.driverService.ListDrivers(c.Request.Context(), params, status)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Drivers retrieved", drivers, &utils.Meta{Pagination: meta})
}

// GetDriver returns one driver with its performance snapshot
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Driver")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Driver retrieved", driver)
}

// GetDriverMetrics returns the stored daily metric rows for a window
func (h *DriverHandler) GetDriverMetrics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(utils.DefaultSyncWindowDays)))

	metrics, err := h.driverService.GetDriverMetrics(c.Request.Context(), c.Param("id"), days)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Driver")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Metrics retrieved", metrics)
}

// UpdateDriver updates locally editable profile fields
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	var request validators.UpdateDriverRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUpdateDriverRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	driver, err := h.driverService.UpdateDriver(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Driver")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Driver updated", driver)
}

// UpdateDriverStatus changes a driver's status
func (h *DriverHandler) UpdateDriverStatus(c *gin.Context) {
	var request validators.UpdateDriverStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUpdateDriverStatusRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	driver, err := h.driverService.UpdateDriverStatus(c.Request.Context(), c.Param("id"), models.DriverStatus(request.Status))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Driver")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Driver status updated", driver)
}

// GetFleetSummary returns the dashboard rollup
func (h *DriverHandler) GetFleetSummary(c *gin.Context) {
	summary, err := h.driverService.GetFleetSummary(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Fleet summary retrieved", summary)
}

// EvaluateDriver runs the enabled alert rules against one driver
func (h *DriverHandler) EvaluateDriver(c *gin.Context) {
	triggered, err := h.alertService.EvaluateDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Driver")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Driver evaluated", triggered)
}

// GetDriverAlerts lists alert events dispatched to one driver
func (h *DriverHandler) GetDriverAlerts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	events, meta, err := h.alertService.ListEvents(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Alert events retrieved", events, &utils.Meta{Pagination: meta})
}
