package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/orghub/server/cmd/server/docs" // swagger docs
	orghttp "github.com/orghub/server/internal/adapter/inbound/http/organization"
	"github.com/orghub/server/internal/port/inbound"
	"github.com/orghub/server/internal/port/outbound"
	"github.com/orghub/server/internal/shared/config"
	"github.com/orghub/server/internal/shared/database"
	"github.com/orghub/server/internal/utils/metrics"
	"github.com/orghub/server/internal/utils/middleware"
)

const healthCheckTimeout = 2 * time.Second

// Dependencies holds all wired dependencies.
type Dependencies struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    redis.UniversalClient
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	RateLimiter    outbound.RateLimiterPort
	TokenValidator outbound.TokenValidatorPort

	OrganizationDomain inbound.OrganizationDomain
	InvitationDomain   inbound.InvitationDomain

	OrganizationHandler *orghttp.Handler
}

// App represents the application.
type App struct {
	config  *config.Config
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	deps, cleanup, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize dependencies: %w", err)
	}

	app := &App{
		config:  cfg,
		deps:    deps,
		cleanup: cleanup,
	}
	app.router = app.setupRouter()

	deps.Logger.Info("application initialized",
		zap.String("database", cfg.Database.Driver),
		zap.Bool("redis", deps.Redis != nil),
		zap.Bool("rate_limit", deps.RateLimiter != nil),
		zap.Bool("metrics", deps.Metrics != nil),
	)
	return app, nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := a.deps
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: a.config.CORS.AllowOrigins,
	}))

	r.GET("/health", a.health)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	if a.config.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}

	api := r.Group("/api/v1")
	deps.OrganizationHandler.RegisterRoutes(api, orghttp.Middlewares{
		Auth: middleware.RequireAuth(deps.TokenValidator),
		RateLimit: middleware.RateLimit(deps.RateLimiter, middleware.RateLimitConfig{
			Limit:   a.config.RateLimit.Requests,
			Window:  a.config.RateLimit.Window,
			KeyFunc: middleware.UserOrIPKey,
			Logger:  deps.Logger,
			Metrics: deps.Metrics,
		}),
		Idempotency: middleware.Idempotency(deps.Redis, middleware.IdempotencyConfig{
			Logger: deps.Logger,
		}),
	})

	return r
}

// health reports whether the database is reachable.
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := database.Ping(ctx, a.deps.DB); err != nil {
		a.deps.Logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.Logger
}

// Stop releases resources held by the application.
func (a *App) Stop() {
	_ = a.deps.Logger.Sync()
	if a.cleanup != nil {
		a.cleanup()
	}
}
