package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/example/inventory-service/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/example/inventory-service/internal/domains/orders/domain"
	ordersports "github.com/example/inventory-service/internal/domains/orders/ports"
	apierrors "github.com/example/inventory-service/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the order workflow service and the
// durable fulfillment orchestrator.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /api/orders
// Create a purchase order after checking availability for every line
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	order, err := api.service.CreateOrder(c.Request.Context(), orderhttpmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

// Post /api/orders/:orderId/process
// Decrement stock for every line and complete the order
func (api *OrderAPI) ProcessOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.processOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

func (api *OrderAPI) processOrder(ctx context.Context, orderID int64) (*ordersdomain.PurchaseOrder, error) {
	if api.workflows != nil {
		return api.workflows.ProcessOrder(ctx, orderID)
	}
	return api.service.ProcessOrder(ctx, orderID)
}

// Post /api/orders/:orderId/cancel
// Cancel an order, restoring stock if processing had already committed it
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.CancelOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders
// List all purchase orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.GetAllOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrderById(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Get /api/orders/status/:status
// Find orders by lifecycle status
func (api *OrderAPI) GetOrdersByStatus(c *gin.Context) {
	status, err := ordersdomain.ParseStatus(c.Param("status"))
	if err != nil {
		problems.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	orders, err := api.service.GetOrdersByStatus(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/orders/customer/:email
// Find orders by customer email
func (api *OrderAPI) GetOrdersByCustomer(c *gin.Context) {
	orders, err := api.service.GetOrdersByCustomerEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/orders/date-range?start=...&end=...
// Find orders placed within a closed date interval
func (api *OrderAPI) GetOrdersBetweenDates(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		problems.Respond(c, apierrors.ErrBadRequest.WithDetail("start must be an RFC 3339 timestamp"))
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		problems.Respond(c, apierrors.ErrBadRequest.WithDetail("end must be an RFC 3339 timestamp"))
		return
	}
	orders, err := api.service.GetOrdersBetweenDates(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}
