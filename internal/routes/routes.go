package routes

import (
	"memberhub_backend/internal/auth"
	"memberhub_backend/internal/handlers"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/middleware"
	"memberhub_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP and websocket route. Everything under
// /api/v1 except /auth requires a bearer token.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	tokens *auth.TokenIssuer,
	limiter *middleware.RateLimiter,
) {
	SetupPublicRoutes(ginRouter)

	api := ginRouter.Group("/api/v1")

	public := api.Group("")
	public.Use(limiter.Handler())

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens), limiter.Handler())
	{
		appHandlers.AuthHandler.RegisterRoutes(public, protected)
		appHandlers.BusinessHandler.RegisterRoutes(protected)
		appHandlers.MemberHandler.RegisterRoutes(protected)
		appHandlers.PlanHandler.RegisterRoutes(protected)
		appHandlers.MembershipHandler.RegisterRoutes(protected)
		appHandlers.PaymentHandler.RegisterRoutes(protected)
		appHandlers.NotificationHandler.RegisterRoutes(protected)
		appHandlers.DashboardHandler.RegisterRoutes(protected)
		appHandlers.JobHandler.RegisterRoutes(protected)
	}

	SetupWebSocketRoutes(ginRouter, wsHandler)
	logger.Info("routes registered", "count", len(ginRouter.Routes()))
}
