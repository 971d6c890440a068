package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server routes.
type Routes []Route

// ApiHandleFunctions groups the per-context API handlers mounted on the router.
type ApiHandleFunctions struct {
	ProductAPI   ProductAPI
	InventoryAPI InventoryAPI
	OrderAPI     OrderAPI
}

// NewRouter returns a new gin engine with all routes mounted.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine mounts all routes onto an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultFunc(c *gin.Context) {}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{
			"CreateProduct",
			http.MethodPost,
			"/api/products",
			handleFunctions.ProductAPI.CreateProduct,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/api/products",
			handleFunctions.ProductAPI.ListProducts,
		},
		{
			"GetProductById",
			http.MethodGet,
			"/api/products/:productId",
			handleFunctions.ProductAPI.GetProductById,
		},
		{
			"UpdateProduct",
			http.MethodPut,
			"/api/products/:productId",
			handleFunctions.ProductAPI.UpdateProduct,
		},
		{
			"DeleteProduct",
			http.MethodDelete,
			"/api/products/:productId",
			handleFunctions.ProductAPI.DeleteProduct,
		},
		{
			"GetProductBySku",
			http.MethodGet,
			"/api/products/sku/:sku",
			handleFunctions.ProductAPI.GetProductBySku,
		},
		{
			"ListStockLevels",
			http.MethodGet,
			"/api/inventory",
			handleFunctions.InventoryAPI.ListStockLevels,
		},
		{
			"GetStockLevel",
			http.MethodGet,
			"/api/inventory/:productId",
			handleFunctions.InventoryAPI.GetStockLevel,
		},
		{
			"SetStockLevel",
			http.MethodPut,
			"/api/inventory/:productId",
			handleFunctions.InventoryAPI.SetStockLevel,
		},
		{
			"AdjustStockLevel",
			http.MethodPost,
			"/api/inventory/:productId/adjust",
			handleFunctions.InventoryAPI.AdjustStockLevel,
		},
		{
			"CreateOrder",
			http.MethodPost,
			"/api/orders",
			handleFunctions.OrderAPI.CreateOrder,
		},
		{
			"ListOrders",
			http.MethodGet,
			"/api/orders",
			handleFunctions.OrderAPI.ListOrders,
		},
		{
			"GetOrdersBetweenDates",
			http.MethodGet,
			"/api/orders/date-range",
			handleFunctions.OrderAPI.GetOrdersBetweenDates,
		},
		{
			"GetOrderById",
			http.MethodGet,
			"/api/orders/:orderId",
			handleFunctions.OrderAPI.GetOrderById,
		},
		{
			"ProcessOrder",
			http.MethodPost,
			"/api/orders/:orderId/process",
			handleFunctions.OrderAPI.ProcessOrder,
		},
		{
			"CancelOrder",
			http.MethodPost,
			"/api/orders/:orderId/cancel",
			handleFunctions.OrderAPI.CancelOrder,
		},
		{
			"GetOrdersByStatus",
			http.MethodGet,
			"/api/orders/status/:status",
			handleFunctions.OrderAPI.GetOrdersByStatus,
		},
		{
			"GetOrdersByCustomer",
			http.MethodGet,
			"/api/orders/customer/:email",
			handleFunctions.OrderAPI.GetOrdersByCustomer,
		},
	}
}
