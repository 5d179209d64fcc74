package handlers

import (
	"net/http"

	"memberhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetStats)
}

// GetStats godoc
// @Summary Business dashboard
// @Description Member counts, renewals due and money collected, computed on every request
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardStats
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), h.GetDB(c), businessID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
