package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"memberhub_backend/database"
	"memberhub_backend/internal/auth"
	"memberhub_backend/internal/clock"
	"memberhub_backend/internal/config"
	"memberhub_backend/internal/handlers"
	"memberhub_backend/internal/lock"
	"memberhub_backend/internal/logger"
	"memberhub_backend/internal/metrics"
	"memberhub_backend/internal/middleware"
	"memberhub_backend/internal/routes"
	"memberhub_backend/internal/services"
	"memberhub_backend/internal/validator"
	"memberhub_backend/internal/workers"
	"memberhub_backend/pkg/apperrors"
	"memberhub_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// App is the assembled service. Tests build one over SQLite with a fixed
// clock and drive Router directly.
type App struct {
	Router    *gin.Engine
	DB        *gorm.DB
	Services  *services.ServiceContainer
	Worker    *workers.ExpiryWorker
	WSManager *ws.WebSocketManager
	Tokens    *auth.TokenIssuer

	cfg     *config.Config
	redis   *redis.Client
	limiter *middleware.RateLimiter
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.DebugErrors = cfg.Server.Env == "development"

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, nil)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	logger.Info("Database connected")

	application := New(cfg, gormDB, clock.New())
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Start(ctx); err != nil {
		logger.Fatal("Failed to start background jobs", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// New wires repositories, services, handlers and routes. Nothing is
// started; call Start for the websocket hub and the scheduler.
func New(cfg *config.Config, gormDB *gorm.DB, clk clock.Clock) *App {
	tokens := auth.NewTokenIssuerFromConfig(cfg, clk.Now)

	serviceContainer := services.NewServiceContainer(tokens, clk)

	wsManager := ws.NewWebSocketManager()
	serviceContainer.NotificationService.SetPusher(wsManager)
	wsHandler := ws.NewWebSocketHandler(wsManager, tokens, cfg.CORS.AllowedOrigins)

	locker, redisClient := lock.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	worker := workers.NewExpiryWorkerFromConfig(gormDB, serviceContainer.ExpiryService, locker, cfg)

	appHandlers := initializeHandlers(serviceContainer, worker)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	ginRouter := initializeGinRouter(gormDB, cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, tokens, limiter)

	return &App{
		Router:    ginRouter,
		DB:        gormDB,
		Services:  serviceContainer,
		Worker:    worker,
		WSManager: wsManager,
		Tokens:    tokens,
		cfg:       cfg,
		redis:     redisClient,
		limiter:   limiter,
	}
}

// Start runs the websocket hub, the limiter janitor and, when enabled, the
// scheduler. Everything stops with ctx.
func (a *App) Start(ctx context.Context) error {
	go a.WSManager.Run(ctx)
	a.limiter.StartCleanup(time.Minute, ctx.Done())

	if !a.cfg.Scheduler.Enabled {
		logger.Info("Scheduler disabled")
		return nil
	}
	return a.Worker.Start(ctx)
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func initializeHandlers(svc *services.ServiceContainer, worker *workers.ExpiryWorker) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, svc.AuthService),
		BusinessHandler:     handlers.NewBusinessHandler(baseHandler, svc.BusinessService),
		MemberHandler:       handlers.NewMemberHandler(baseHandler, svc.MemberService),
		PlanHandler:         handlers.NewPlanHandler(baseHandler, svc.PlanService),
		MembershipHandler:   handlers.NewMembershipHandler(baseHandler, svc.MembershipService),
		PaymentHandler:      handlers.NewPaymentHandler(baseHandler, svc.PaymentService, svc.ReceiptService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, svc.NotificationService),
		DashboardHandler:    handlers.NewDashboardHandler(baseHandler, svc.DashboardService),
		JobHandler:          handlers.NewJobHandler(baseHandler, worker),
	}
}

func initializeGinRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.GinMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
