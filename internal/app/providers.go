package app

import (
	"context"
	"net/http"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/uniedit/orderflow/internal/domain/order"

	// Modules
	ordermodule "github.com/uniedit/orderflow/internal/module/order"
	paymentmodule "github.com/uniedit/orderflow/internal/module/payment"

	// Inbound adapters
	ginadapter "github.com/uniedit/orderflow/internal/adapter/inbound/gin"

	// Ports
	"github.com/uniedit/orderflow/internal/port/inbound"
	"github.com/uniedit/orderflow/internal/port/outbound"

	// Outbound adapters
	"github.com/uniedit/orderflow/internal/adapter/outbound/breaker"
	kafkaadapter "github.com/uniedit/orderflow/internal/adapter/outbound/kafka"
	"github.com/uniedit/orderflow/internal/adapter/outbound/postgres"
	redisadapter "github.com/uniedit/orderflow/internal/adapter/outbound/redis"
	stripeadapter "github.com/uniedit/orderflow/internal/adapter/outbound/stripe"

	// Infrastructure
	"github.com/uniedit/orderflow/internal/infra/config"
	"github.com/uniedit/orderflow/internal/infra/events"
	"github.com/uniedit/orderflow/internal/infra/httpclient"
	"github.com/uniedit/orderflow/internal/shared/cache"
	"github.com/uniedit/orderflow/internal/shared/database"
	"github.com/uniedit/orderflow/internal/shared/logger"

	// Utils
	"github.com/uniedit/orderflow/internal/utils/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideDatabase,
	ProvideRedisClient,
	ProvideHTTPClient,
	ProvideRateLimiter,
	ProvideReplayStore,
	ProvideRegistry,
	ProvideMetrics,
	ProvideEventBus,
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) *zap.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideDatabase opens the database and migrates the order table when enabled.
func ProvideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.New(context.Background(), &cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			log.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client. Redis is optional; a nil client
// disables idempotency replay and rate limiting.
func ProvideRedisClient(cfg *config.Config, log *zap.Logger) (goredis.UniversalClient, func()) {
	if cfg.Redis.Address == "" {
		return nil, func() {}
	}
	client, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
	if err != nil {
		log.Warn("redis connection failed, continuing without it", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ProvideHTTPClient creates the shared outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config) *http.Client {
	return httpclient.New(cfg.HTTPClient, httpclient.WithUserAgent("orderflow"))
}

// ProvideRateLimiter creates the Redis-backed rate limiter.
func ProvideRateLimiter(client goredis.UniversalClient) outbound.RateLimiterPort {
	if client == nil {
		return nil
	}
	return redisadapter.NewRateLimiter(client)
}

// ProvideReplayStore creates the Redis-backed idempotency replay store.
func ProvideReplayStore(client goredis.UniversalClient) outbound.ReplayStorePort {
	if client == nil {
		return nil
	}
	return redisadapter.NewReplayStore(client)
}

// ProvideRegistry creates the Prometheus registry served on /metrics.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates application metrics on reg.
func ProvideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.NewWithRegistry("orderflow", reg)
}

// ProvideEventBus creates the domain event bus. Order events are logged and,
// when brokers are configured, forwarded to kafka.
func ProvideEventBus(cfg *config.Config, log *zap.Logger) (*events.Bus, func()) {
	bus := events.NewBus(log)
	bus.Register(events.NewHandlerFunc([]string{ordermodule.OrderTransitionedType}, func(_ context.Context, e events.Event) error {
		log.Debug("order event", zap.String("event_id", e.EventID().String()), zap.String("aggregate_id", e.AggregateID()))
		return nil
	}))

	if !cfg.Kafka.Enabled() {
		return bus, func() {}
	}
	forwarder := kafkaadapter.NewEventForwarder(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, []string{ordermodule.OrderTransitionedType}, log)
	bus.Register(forwarder)
	return bus, func() {
		if err := forwarder.Close(); err != nil {
			log.Warn("close event forwarder", zap.Error(err))
		}
	}
}

// ===== Outbound Adapter Providers =====

// OutboundSet provides outbound adapters.
var OutboundSet = wire.NewSet(
	ProvideOrderRepository,
	ProvideCheckoutGateway,
	ProvidePaymentGateway,
)

// ProvideOrderRepository creates the gorm order repository.
func ProvideOrderRepository(db *gorm.DB) order.Repository {
	return postgres.NewOrderRepository(db)
}

// ProvideCheckoutGateway creates the Stripe checkout gateway.
func ProvideCheckoutGateway(cfg *config.Config, client *http.Client, log *zap.Logger) *stripeadapter.CheckoutGateway {
	return stripeadapter.NewCheckoutGateway(stripeadapter.Config{
		SecretKey:  cfg.Stripe.SecretKey,
		Currency:   cfg.Stripe.Currency,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
		BaseURL:    cfg.Stripe.APIBaseURL,
		HTTPClient: client,
	}, log)
}

// ProvidePaymentGateway guards the checkout gateway with a circuit breaker.
func ProvidePaymentGateway(cfg *config.Config, checkout *stripeadapter.CheckoutGateway, m *metrics.Metrics, log *zap.Logger) outbound.PaymentGatewayPort {
	return breaker.NewGateway(checkout, breaker.Config{
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	}, m, log)
}

// ===== Service Providers =====

// ServiceSet provides backend services.
var ServiceSet = wire.NewSet(
	ProvideTransitionService,
	ProvideSessionService,
)

// ProvideTransitionService creates the order transition service.
func ProvideTransitionService(repo order.Repository, bus *events.Bus, log *zap.Logger) inbound.OrderTransitionService {
	return ordermodule.NewTransitionService(repo, bus, log)
}

// ProvideSessionService creates the checkout session service.
func ProvideSessionService(repo order.Repository, gateway outbound.PaymentGatewayPort, log *zap.Logger) inbound.PaymentSessionService {
	return paymentmodule.NewSessionService(repo, gateway, log)
}

// ===== Inbound Adapter Providers =====

// HandlerSet provides HTTP handlers.
var HandlerSet = wire.NewSet(
	ProvideOrderHandler,
	ProvidePaymentHandler,
)

// ProvideOrderHandler creates the order HTTP handler.
func ProvideOrderHandler(service inbound.OrderTransitionService, log *zap.Logger) inbound.OrderHttpPort {
	return ginadapter.NewOrderHandler(service, log)
}

// ProvidePaymentHandler creates the payment HTTP handler.
func ProvidePaymentHandler(service inbound.PaymentSessionService, log *zap.Logger) inbound.PaymentHttpPort {
	return ginadapter.NewPaymentAdapter(service, log)
}
