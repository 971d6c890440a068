package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/example/inventory-service/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/example/inventory-service/internal/domains/catalog/application"
)

// Middleware has to be registered before the routes are mounted: gin
// snapshots the handler chain per route, so anything added afterwards never
// runs. This pins the wiring order the app runner relies on.
func TestNewRouterWithGinEngine_MiddlewareBeforeMountRuns(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	var touched bool
	engine.Use(func(c *gin.Context) {
		touched = true
		c.Next()
	})
	handlers := ApiHandleFunctions{
		ProductAPI: NewProductAPI(catalogapp.NewService(catalogmemory.NewRepository())),
	}
	router := NewRouterWithGinEngine(engine, handlers)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, touched)
}

func TestNewRouter_MiddlewareAfterMountDoesNotRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handlers := ApiHandleFunctions{
		ProductAPI: NewProductAPI(catalogapp.NewService(catalogmemory.NewRepository())),
	}
	router := NewRouter(handlers)
	var touched bool
	router.Use(func(c *gin.Context) {
		touched = true
		c.Next()
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, touched)
}
