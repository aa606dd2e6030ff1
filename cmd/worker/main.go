package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"gorm.io/gorm"

	catalogmemory "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/commercekit/go-order-api/internal/domains/catalog/ports"
	customermemory "github.com/commercekit/go-order-api/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/commercekit/go-order-api/internal/domains/customers/adapters/persistence/postgres"
	customerports "github.com/commercekit/go-order-api/internal/domains/customers/ports"
	orderlocal "github.com/commercekit/go-order-api/internal/domains/orders/adapters/local"
	ordermemory "github.com/commercekit/go-order-api/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/commercekit/go-order-api/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/commercekit/go-order-api/internal/domains/orders/application"
	orderports "github.com/commercekit/go-order-api/internal/domains/orders/ports"
	platformobservability "github.com/commercekit/go-order-api/internal/platform/observability"
	platformpostgres "github.com/commercekit/go-order-api/internal/platform/postgres"
	orderactivities "github.com/commercekit/go-order-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/commercekit/go-order-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.ConfigFromEnv(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.MaybeConnect(ctx, strings.TrimSpace(os.Getenv("POSTGRES_DSN")), logger)
	defer cleanupDB()

	orderService := orderapp.NewService(
		buildOrderRepository(db),
		orderlocal.NewCustomerDirectory(buildCustomerRepository(db)),
		orderlocal.NewProductCatalog(buildProductRepository(db)),
	)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.StageOrder, activity.RegisterOptions{Name: orderactivities.StageOrderActivityName})
	w.RegisterActivityWithOptions(activities.CommitInventory, activity.RegisterOptions{Name: orderactivities.CommitInventoryActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildCustomerRepository(db *gorm.DB) customerports.Repository {
	if db == nil {
		return customermemory.NewRepository()
	}
	return customerpostgres.NewRepository(db)
}

func buildProductRepository(db *gorm.DB) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db)
}

func buildOrderRepository(db *gorm.DB) orderports.Repository {
	if db == nil {
		return ordermemory.NewRepository()
	}
	return orderpostgres.NewRepository(db)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
