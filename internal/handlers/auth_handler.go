package handlers

import (
	"net/http"

	"memberhub_backend/internal/middleware"
	"memberhub_backend/internal/models"
	"memberhub_backend/internal/services"
	"memberhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes mounts /auth on the public group and /staff on the
// authenticated one.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	staff := protected.Group("/staff")
	staff.Use(middleware.RequireRoles(models.UserRoleOwner))
	{
		staff.POST("", h.CreateStaff)
		staff.GET("", h.ListStaff)
	}
}

// Register godoc
// @Summary Register a business
// @Description Creates the owner account and its business, then signs the owner in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Owner and business"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Email already in use"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateStaff godoc
// @Summary Add a staff account
// @Description Owner only. The new user gets the admin role in the owner's business.
// @Tags Staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateStaffRequest true "Staff account"
// @Success 201 {object} dto.UserDTO
// @Router /api/v1/staff [post]
func (h *AuthHandler) CreateStaff(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	var req dto.CreateStaffRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.CreateStaff(c.Request.Context(), h.GetDB(c), businessID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) ListStaff(c *gin.Context) {
	businessID, ok := h.GetBusinessID(c)
	if !ok {
		return
	}

	users, err := h.authService.ListStaff(c.Request.Context(), h.GetDB(c), businessID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}
