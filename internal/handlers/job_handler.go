package handlers

import (
	"context"
	"net/http"

	"memberhub_backend/internal/middleware"
	"memberhub_backend/internal/services"
	"memberhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ExpiryRunner triggers one expiry sweep
type ExpiryRunner interface {
	RunExpiryNow(ctx context.Context) (services.ExpiryResult, error)
}

type JobHandler struct {
	*BaseHandler
	runner ExpiryRunner
}

func NewJobHandler(base *BaseHandler, runner ExpiryRunner) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		runner:      runner,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	jobs.Use(middleware.RequirePermission("jobs:run"))
	{
		jobs.POST("/expire-memberships", h.ExpireMemberships)
	}
}

// ExpireMemberships godoc
// @Summary Run the expiry sweep now
// @Description Sweeps every business, the same job the scheduler runs daily. Owner only.
// @Tags Jobs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ExpireMembershipsResponse
// @Failure 409 {object} apperrors.ErrorResponse "A sweep is already running"
// @Router /api/v1/jobs/expire-memberships [post]
func (h *JobHandler) ExpireMemberships(c *gin.Context) {
	result, err := h.runner.RunExpiryNow(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ExpireMembershipsResponse{
		Expired: result.Expired,
		Failed:  result.Failed,
	})
}
