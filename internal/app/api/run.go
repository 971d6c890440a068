package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	catalogmemory "github.com/example/inventory-service/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/example/inventory-service/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/example/inventory-service/internal/domains/catalog/application"
	catalogports "github.com/example/inventory-service/internal/domains/catalog/ports"

	inventorymemory "github.com/example/inventory-service/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/example/inventory-service/internal/domains/inventory/adapters/observability"
	inventorypostgres "github.com/example/inventory-service/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/example/inventory-service/internal/domains/inventory/application"
	inventoryports "github.com/example/inventory-service/internal/domains/inventory/ports"

	ordersmemory "github.com/example/inventory-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/example/inventory-service/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/example/inventory-service/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/example/inventory-service/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/example/inventory-service/internal/domains/orders/application"
	ordersports "github.com/example/inventory-service/internal/domains/orders/ports"

	"github.com/example/inventory-service/internal/httpapi"
	"github.com/example/inventory-service/internal/platform/migrations"
	platformobservability "github.com/example/inventory-service/internal/platform/observability"
	platformpostgres "github.com/example/inventory-service/internal/platform/postgres"
)

// Run boots the inventory HTTP API with observability, repositories, and
// durable workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "inventory-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
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

	db, cleanupDB := platformpostgres.ConnectOptional(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
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
		catalogRepo = catalogmemory.NewRepository()
		inventoryRepo = inventorymemory.NewRepository()
		orderRepo = ordersmemory.NewRepository()
		transactor = ordersmemory.NewTransactor()
	}

	catalogService := catalogapp.NewService(catalogRepo)
	inventoryService := inventoryobs.New(
		inventoryapp.NewService(inventoryRepo),
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, transactor, catalogService, inventoryService),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running ProcessOrder inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := httpapi.ApiHandleFunctions{
		ProductAPI:   httpapi.NewProductAPI(catalogService),
		InventoryAPI: httpapi.NewInventoryAPI(inventoryService),
		OrderAPI:     httpapi.NewOrderAPI(orderService, orderWorkflows),
	}

	// Middleware must precede route mounting: gin snapshots the handler
	// chain when each route is registered.
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := httpapi.NewRouterWithGinEngine(engine, handlers)
	addr := ":" + cfg.Port
	logger.Info("inventory API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("inventory API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
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
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
