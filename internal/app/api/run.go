package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	goredis "github.com/redis/go-redis/v9"

	catalogmemory "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/commercekit/go-order-api/internal/domains/catalog/application"
	catalogports "github.com/commercekit/go-order-api/internal/domains/catalog/ports"

	customermemory "github.com/commercekit/go-order-api/internal/domains/customers/adapters/memory"
	customerobs "github.com/commercekit/go-order-api/internal/domains/customers/adapters/observability"
	customerpostgres "github.com/commercekit/go-order-api/internal/domains/customers/adapters/persistence/postgres"
	customerapp "github.com/commercekit/go-order-api/internal/domains/customers/application"
	customerports "github.com/commercekit/go-order-api/internal/domains/customers/ports"

	orderlocal "github.com/commercekit/go-order-api/internal/domains/orders/adapters/local"
	ordermemory "github.com/commercekit/go-order-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/commercekit/go-order-api/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/commercekit/go-order-api/internal/domains/orders/adapters/persistence/postgres"
	orderredis "github.com/commercekit/go-order-api/internal/domains/orders/adapters/redis"
	orderworkflowadapters "github.com/commercekit/go-order-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/commercekit/go-order-api/internal/domains/orders/application"
	orderports "github.com/commercekit/go-order-api/internal/domains/orders/ports"

	platformmigrations "github.com/commercekit/go-order-api/internal/platform/migrations"
	platformobservability "github.com/commercekit/go-order-api/internal/platform/observability"
	platformpostgres "github.com/commercekit/go-order-api/internal/platform/postgres"
	"github.com/commercekit/go-order-api/internal/transport/httpapi"
)

// Run boots the order HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "order-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.MaybeConnect(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	customerRepo := buildCustomerRepository(db, logger)
	productRepo := buildProductRepository(db, logger)
	orderRepo := buildOrderRepository(db, logger)

	idempotencyStore, cleanupIdem := buildIdempotencyStore(ctx, cfg, db, logger)
	defer cleanupIdem()

	customerService := customerobs.New(
		customerapp.NewService(customerRepo),
		customerobs.WithLogger(logger),
		customerobs.WithTracer(instruments.Tracer("internal.customers.application")),
		customerobs.WithMeter(instruments.Meter("internal.customers.application")),
	)
	productService := catalogobs.New(
		catalogapp.NewService(productRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	coreOrderService := orderapp.NewService(
		orderRepo,
		orderlocal.NewCustomerDirectory(customerRepo),
		orderlocal.NewProductCatalog(productRepo),
		orderapp.WithIdempotencyStore(idempotencyStore),
	)
	orderService := orderobs.New(
		coreOrderService,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows orderports.WorkflowOrchestrator = orderworkflowadapters.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderworkflowadapters.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := httpapi.ApiHandleFunctions{
		CustomersAPI: httpapi.NewCustomersAPI(customerService),
		ProductsAPI:  httpapi.NewProductsAPI(productService),
		OrdersAPI:    httpapi.NewOrdersAPI(orderService, orderWorkflows),
	}

	router := httpapi.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildCustomerRepository(db *gorm.DB, logger *slog.Logger) customerports.Repository {
	if db == nil {
		return customermemory.NewRepository()
	}
	logger.Info("customer repository configured with postgres")
	return customerpostgres.NewRepository(db)
}

func buildProductRepository(db *gorm.DB, logger *slog.Logger) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	logger.Info("product repository configured with postgres")
	return catalogpostgres.NewRepository(db)
}

func buildOrderRepository(db *gorm.DB, logger *slog.Logger) orderports.Repository {
	if db == nil {
		return ordermemory.NewRepository()
	}
	logger.Info("order repository configured with postgres")
	return orderpostgres.NewRepository(db)
}

// buildIdempotencyStore prefers redis, then postgres, then memory. The
// memory store only dedupes within one process lifetime.
func buildIdempotencyStore(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (orderports.IdempotencyStore, func()) {
	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Warn("failed to connect to redis, skipping redis idempotency store", slog.String("error", err.Error()))
			_ = redisClient.Close()
		} else {
			logger.Info("idempotency store configured with redis")
			return orderredis.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL), func() { _ = redisClient.Close() }
		}
	}
	if db != nil {
		logger.Info("idempotency store configured with postgres")
		return orderpostgres.NewIdempotencyStore(db, cfg.IdempotencyTTL), func() {}
	}
	logger.Warn("idempotency store configured in-memory, keys do not survive restarts")
	return ordermemory.NewIdempotencyStore(), func() {}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
