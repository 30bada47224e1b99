package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"
	"fleetpulse/internal/validators"
)

type AlertHandler struct {
	alertService services.AlertService
}

func NewAlertHandler(alertService services.AlertService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
	}
}

// CreateRule creates an alert rule
func (h *AlertHandler) CreateRule(c *gin.Context) {
	var request validators.CreateAlertRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateAlertRuleRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	rule, err := h.alertService.CreateRule(c.Request.Context(), &request)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Alert rule created", rule)
}

// GetRule returns one alert rule
func (h *AlertHandler) GetRule(c *gin.Context) {
	rule, err := h.alertService.GetRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Alert rule")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Alert rule retrieved", rule)
}

// UpdateRule updates an alert rule
func (h *AlertHandler) UpdateRule(c *gin.Context) {
	var request validators.UpdateAlertRuleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateUpdateAlertRuleRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	rule, err := h.alertService.UpdateRule(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Alert rule")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Alert rule updated", rule)
}

// DeleteRule removes an alert rule
func (h *AlertHandler) DeleteRule(c *gin.Context) {
	if err := h.alertService.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Alert rule")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Alert rule deleted", nil)
}

// ListRules lists alert rules
func (h *AlertHandler) ListRules(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	rules, meta, err := h.alertService.ListRules(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Alert rules retrieved", rules, &utils.Meta{Pagination: meta})
}

// PreviewAlert renders the alert message without delivering it
func (h *AlertHandler) PreviewAlert(c *gin.Context) {
	var request validators.PreviewAlertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidatePreviewAlertRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	preview, err := h.alertService.Preview(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Driver")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Alert preview generated", preview)
}

// DispatchAlert delivers an alert over SMS or voice call
func (h *AlertHandler) DispatchAlert(c *gin.Context) {
	var request validators.DispatchAlertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateDispatchAlertRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	event, err := h.alertService.Dispatch(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Driver")
			return
		}
		if event != nil {
			// Recorded but undelivered; surface the event with the error.
			utils.ErrorResponse(c, http.StatusBadGateway, "DELIVERY_FAILED", err.Error())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Alert dispatched", event)
}

// ListEvents lists dispatched alert events across the fleet
func (h *AlertHandler) ListEvents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	events, meta, err := h.alertService.ListEvents(c.Request.Context(), c.Query("driver_id"), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Alert events retrieved", events, &utils.Meta{Pagination: meta})
}
