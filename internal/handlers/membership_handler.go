package handlers

import (
	"net/http"

	"memberhub_backend/internal/services"
	"memberhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	*BaseHandler
	membershipService services.MembershipService
}

func NewMembershipHandler(base *BaseHandler, membershipService services.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		BaseHandler:       base,
		membershipService: membershipService,
	}
}

func (h *MembershipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	memberships := rg.Group("/memberships")
	{
		memberships.POST("", h.CreateMembership)
		memberships.GET("", h.ListMemberships)
		memberships.GET("/active", h.GetActive)
		memberships.GET("/expired", h.GetExpired)
		memberships.GET("/:id", h.GetMembership)
	}

	rg.GET("/renewals/expiring", h.GetExpiring)
}

// CreateMembership godoc
// @Summary Enrol a member in a plan
// @Description Amount and expiry are taken from the plan at this moment. start_date defaults to now.
// @Tags Memberships
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMembershipRequest true "Membership"
// @Success 201 {object} dto.MembershipDTO
// @Failure 404 {object} apperrors.ErrorResponse "Member or plan not found"
// @Failure 409 {object} apperrors.ErrorResponse "Overlapping active membership"
// @Router /api/v1/memberships [post]
func (h *MembershipHandler) CreateMembership(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreateMembershipRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	membership, err := h.membershipService.CreateMembership(c.Request.Context(), h.GetDB(c), businessID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// ListMemberships godoc
// @Summary List memberships
// @Tags Memberships
// @Security BearerAuth
// @Produce json
// @Param member_id query string false "Filter by member"
// @Success 200 {array} dto.MembershipDTO
// @Router /api/v1/memberships [get]
func (h *MembershipHandler) ListMemberships(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	memberships, err := h.membershipService.ListMemberships(c.Request.Context(), h.GetDB(c), businessID, c.Query("member_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}

func (h *MembershipHandler) GetMembership(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	membership, err := h.membershipService.GetMembership(c.Request.Context(), h.GetDB(c), businessID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, membership)
}

func (h *MembershipHandler) GetActive(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	memberships, err := h.membershipService.GetActive(c.Request.Context(), h.GetDB(c), businessID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}

func (h *MembershipHandler) GetExpired(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	memberships, err := h.membershipService.GetExpired(c.Request.Context(), h.GetDB(c), businessID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// GetExpiring godoc
// @Summary Memberships due for renewal
// @Tags Memberships
// @Security BearerAuth
// @Produce json
// @Param days query int false "Window in days" default(7)
// @Success 200 {array} dto.MembershipDTO
// @Router /api/v1/renewals/expiring [get]
func (h *MembershipHandler) GetExpiring(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	days := ParseQueryInt(c, "days", services.DefaultRenewalWindowDays)
	memberships, err := h.membershipService.GetExpiringWithinDays(c.Request.Context(), h.GetDB(c), businessID, days)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, memberships)
}
