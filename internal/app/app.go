package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ginadapter "github.com/uniedit/orderflow/internal/adapter/inbound/gin"
	"github.com/uniedit/orderflow/internal/infra/config"
	"github.com/uniedit/orderflow/internal/infra/events"
	"github.com/uniedit/orderflow/internal/port/inbound"
	"github.com/uniedit/orderflow/internal/port/outbound"
	"github.com/uniedit/orderflow/internal/utils/metrics"
	"github.com/uniedit/orderflow/internal/utils/middleware"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Redis       goredis.UniversalClient
	RateLimiter outbound.RateLimiterPort
	ReplayStore outbound.ReplayStorePort
	Registry    *prometheus.Registry
	Metrics     *metrics.Metrics
	Events      *events.Bus

	// HTTP Handlers
	OrderHandler   inbound.OrderHttpPort
	PaymentHandler inbound.PaymentHttpPort
}

// App represents the backend application.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	deps, cleanup, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("init dependencies: %w", err)
	}

	return &App{
		deps:    deps,
		router:  NewRouter(deps),
		cleanup: cleanup,
	}, nil
}

// NewRouter creates and configures the Gin router.
func NewRouter(deps *Dependencies) *gin.Engine {
	cfg := deps.Config

	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Apply global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Middleware for state-changing routes
	idemCfg := middleware.DefaultIdempotencyConfig()
	if cfg.RateLimit.IdempotencyTTL > 0 {
		idemCfg.TTL = cfg.RateLimit.IdempotencyTTL
	}
	action := []gin.HandlerFunc{middleware.Idempotency(deps.ReplayStore, idemCfg, deps.Logger)}
	if cfg.RateLimit.Enabled {
		action = append(action, middleware.ActionRateLimit(deps.RateLimiter, cfg.RateLimit.ActionLimit, cfg.RateLimit.ActionWindow, deps.Logger))
	}

	v1 := r.Group("/api/v1")
	ginadapter.RegisterOrderRoutes(v1, deps.OrderHandler, action...)
	ginadapter.RegisterPaymentRoutes(v1, deps.PaymentHandler, action...)

	return r
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.Logger
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
	}
	_ = a.deps.Logger.Sync()
}
