package handlers

import (
	"net/http"

	"memberhub_backend/internal/middleware"
	"memberhub_backend/internal/services"
	"memberhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	*BaseHandler
	businessService services.BusinessService
}

func NewBusinessHandler(base *BaseHandler, businessService services.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		BaseHandler:     base,
		businessService: businessService,
	}
}

func (h *BusinessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	business := rg.Group("/business")
	{
		business.GET("", h.GetBusiness)
		business.PUT("", middleware.RequirePermission("business:write"), h.UpdateBusiness)
	}
}

// GetBusiness godoc
// @Summary Current business
// @Tags Business
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.BusinessDTO
// @Router /api/v1/business [get]
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	business, err := h.businessService.GetBusiness(c.Request.Context(), h.GetDB(c), businessID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, business)
}

// UpdateBusiness godoc
// @Summary Update business profile
// @Tags Business
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateBusinessRequest true "Business profile"
// @Success 200 {object} dto.BusinessDTO
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/business [put]
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	var req dto.UpdateBusinessRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), h.GetDB(c), businessID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, business)
}
