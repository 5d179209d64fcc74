package handlers

import (
	"net/http"

	"memberhub_backend/internal/services"
	"memberhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	*BaseHandler
	memberService services.MemberService
}

func NewMemberHandler(base *BaseHandler, memberService services.MemberService) *MemberHandler {
	return &MemberHandler{
		BaseHandler:   base,
		memberService: memberService,
	}
}

func (h *MemberHandler) RegisterRoutes(rg *gin.RouterGroup) {
	members := rg.Group("/members")
	{
		members.POST("", h.CreateMember)
		members.GET("", h.ListMembers)
		members.GET("/:id", h.GetMember)
		members.PUT("/:id", h.UpdateMember)
		members.POST("/:id/deactivate", h.DeactivateMember)
	}
}

// CreateMember godoc
// @Summary Add a member
// @Tags Members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMemberRequest true "Member"
// @Success 201 {object} dto.MemberDTO
// @Router /api/v1/members [post]
func (h *MemberHandler) CreateMember(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreateMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), h.GetDB(c), businessID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// ListMembers godoc
// @Summary Search members
// @Description Paged, ordered by last name then first name. search matches names, email or phone.
// @Tags Members
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param search query string false "Search term"
// @Success 200 {object} dto.MemberListResponse
// @Router /api/v1/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	var query dto.MemberListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.memberService.ListMembers(c.Request.Context(), h.GetDB(c), businessID, query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), h.GetDB(c), businessID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) UpdateMember(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), h.GetDB(c), businessID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeactivateMember keeps the row and its history; members are never deleted
func (h *MemberHandler) DeactivateMember(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	if err := h.memberService.DeactivateMember(c.Request.Context(), h.GetDB(c), businessID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
