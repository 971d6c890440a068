//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	pacttest "github.com/example/inventory-service/test/pact"

	catalogmemory "github.com/example/inventory-service/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/example/inventory-service/internal/domains/catalog/application"
	catalogdomain "github.com/example/inventory-service/internal/domains/catalog/domain"
	inventorymemory "github.com/example/inventory-service/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/example/inventory-service/internal/domains/inventory/application"
	inventorydomain "github.com/example/inventory-service/internal/domains/inventory/domain"
	ordersmemory "github.com/example/inventory-service/internal/domains/orders/adapters/memory"
	ordersobs "github.com/example/inventory-service/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/example/inventory-service/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/example/inventory-service/internal/domains/orders/application"
	ordersdomain "github.com/example/inventory-service/internal/domains/orders/domain"
	"github.com/example/inventory-service/internal/httpapi"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestInventoryProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCatalog(t)
			}
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCatalog(t)
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			app.seedCatalog(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	catalogRepo   *catalogmemory.Repository
	inventoryRepo *inventorymemory.Repository
	orderRepo     *ordersmemory.Repository
	server        *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	catalogRepo := catalogmemory.NewRepository()
	inventoryRepo := inventorymemory.NewRepository()
	orderRepo := ordersmemory.NewRepository()

	catalogService := catalogapp.NewService(catalogRepo)
	inventoryService := inventoryapp.NewService(inventoryRepo)
	orderService := ordersobs.New(ordersapp.NewService(
		orderRepo,
		ordersmemory.NewTransactor(),
		catalogService,
		inventoryService,
	))
	workflows := ordersworkflows.NewInlineOrderWorkflows(orderService)

	handlers := httpapi.ApiHandleFunctions{
		ProductAPI:   httpapi.NewProductAPI(catalogService),
		InventoryAPI: httpapi.NewInventoryAPI(inventoryService),
		OrderAPI:     httpapi.NewOrderAPI(orderService, workflows),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = httpapi.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		server:        server,
	}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	products, err := a.catalogRepo.List(ctx)
	require.NoError(t, err)
	for _, p := range products {
		_ = a.catalogRepo.Delete(ctx, p.ID)
	}
	orders, err := a.orderRepo.List(ctx)
	require.NoError(t, err)
	for _, o := range orders {
		_ = a.orderRepo.Delete(ctx, o.ID)
	}
	levels, err := a.inventoryRepo.List(ctx)
	require.NoError(t, err)
	for _, level := range levels {
		level.Quantity = 0
		_, _ = a.inventoryRepo.Upsert(ctx, level)
	}
}

func (a *contractProviderApp) seedCatalog(t testing.TB) {
	t.Helper()
	ctx := context.Background()
	product, err := catalogdomain.NewProduct(
		pacttest.SeededProductID,
		pacttest.SeededProductName,
		"contract fixture",
		pacttest.SeededProductSKU,
		decimal.RequireFromString(pacttest.SeededProductPrice),
	)
	require.NoError(t, err)
	_, err = a.catalogRepo.Save(ctx, product)
	require.NoError(t, err)

	level, err := inventorydomain.NewStockLevel(pacttest.SeededProductID, pacttest.SeededStock)
	require.NoError(t, err)
	_, err = a.inventoryRepo.Upsert(ctx, level)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedOrder(t testing.TB, id int64) {
	t.Helper()
	order, err := ordersdomain.NewPurchaseOrder("Pact Customer", "pact.customer@example.com", time.Now())
	require.NoError(t, err)
	line, err := ordersdomain.NewOrderLine(
		pacttest.SeededProductID,
		pacttest.SeededProductName,
		2,
		decimal.RequireFromString(pacttest.SeededProductPrice),
	)
	require.NoError(t, err)
	order.AddLine(line)
	order.ID = id
	_, err = a.orderRepo.Save(context.Background(), order)
	require.NoError(t, err)
}
