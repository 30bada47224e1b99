package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetpulse/internal/services"
	"fleetpulse/internal/utils"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// InspectDatabase returns rows from a whitelisted table. Without a
// table parameter it lists the inspectable tables.
func (h *AdminHandler) InspectDatabase(c *gin.Context) {
	table := c.Query("table")
	if table == "" {
		utils.SuccessResponse(c, "Inspectable tables", h.adminService.ListTables())
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	rows, err := h.adminService.InspectTable(c.Request.Context(), table, limit)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Table rows retrieved", rows, &utils.Meta{Count: len(rows)})
}
