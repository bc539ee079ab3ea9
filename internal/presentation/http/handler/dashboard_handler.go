package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gsolanocr/comercio-api/internal/application/service"
	"github.com/gsolanocr/comercio-api/internal/presentation/http/dto/response"
)

// DashboardHandler serves the home screen aggregates
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the current month's dashboard figures
// GET /api/v1/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved", stats)
}
