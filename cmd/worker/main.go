package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/example/inventory-service/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/example/inventory-service/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/example/inventory-service/internal/domains/catalog/application"
	catalogports "github.com/example/inventory-service/internal/domains/catalog/ports"
	inventorymemory "github.com/example/inventory-service/internal/domains/inventory/adapters/memory"
	inventorypostgres "github.com/example/inventory-service/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/example/inventory-service/internal/domains/inventory/application"
	inventoryports "github.com/example/inventory-service/internal/domains/inventory/ports"
	ordersmemory "github.com/example/inventory-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/example/inventory-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/example/inventory-service/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/example/inventory-service/internal/domains/orders/application"
	ordersports "github.com/example/inventory-service/internal/domains/orders/ports"
	"github.com/example/inventory-service/internal/platform/migrations"
	platformobservability "github.com/example/inventory-service/internal/platform/observability"
	platformpostgres "github.com/example/inventory-service/internal/platform/postgres"
	orderactivities "github.com/example/inventory-service/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/example/inventory-service/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "inventory-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var (
		catalogRepo   catalogports.Repository
		inventoryRepo inventoryports.Repository
		orderRepo     ordersports.Repository
		transactor    ordersports.Transactor
	)
	if db != nil {
		catalogRepo = catalogpostgres.NewRepository(db)
		inventoryRepo = inventorypostgres.NewRepository(db)
		orderRepo = orderspostgres.NewRepository(db)
		transactor = platformpostgres.NewTransactor(db)
	} else {
		logger.Warn("running worker against in-memory repositories, state is process-local")
		catalogRepo = catalogmemory.NewRepository()
		inventoryRepo = inventorymemory.NewRepository()
		orderRepo = ordersmemory.NewRepository()
		transactor = ordersmemory.NewTransactor()
	}

	catalogService := catalogapp.NewService(catalogRepo)
	inventoryService := inventoryapp.NewService(inventoryRepo)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, transactor, catalogService, inventoryService),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
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

	w := worker.New(temporalClient, orderworkflows.FulfillmentTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.FulfillmentWorkflow, workflow.RegisterOptions{Name: orderworkflows.FulfillmentWorkflowName})
	w.RegisterActivityWithOptions(activities.ProcessOrder, activity.RegisterOptions{Name: orderworkflows.ProcessOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.FulfillmentTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
