package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"fleetpulse/internal/repositories/interfaces"
	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// ListReports lists tracked reports, newest first by default
func (h *ReportHandler) ListReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	reports, meta, err := h.reportService.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reports retrieved", reports, &utils.Meta{Pagination: meta})
}

// GetReport returns one report, polling the platform for fresh status
// when the report is still in flight
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.reportService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			utils.NotFoundResponse(c, "Report")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Report retrieved", report)
}
