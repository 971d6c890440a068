package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/example/inventory-service/internal/domains/orders/application"
	ordersdomain "github.com/example/inventory-service/internal/domains/orders/domain"
	ordersports "github.com/example/inventory-service/internal/domains/orders/ports"
	orderworkflows "github.com/example/inventory-service/internal/platform/temporal/workflows/orders"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order workflow service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// ProcessOrder runs the fulfillment transaction for one order: decrement
// stock for every line and flip the order to completed. Business rejections
// are marked non-retryable so the workflow fails fast instead of retrying a
// decision that will never change.
func (a *Activities) ProcessOrder(ctx context.Context, orderID int64) (*ordersdomain.PurchaseOrder, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order fulfillment activity not initialized", "orderId", orderID)
		return nil, errors.New("order fulfillment activity not initialized")
	}
	logger.Info("ProcessOrder activity started", "orderId", orderID)
	order, err := a.service.ProcessOrder(ctx, orderID)
	if err != nil {
		if errType := classifyBusinessError(err); errType != "" {
			logger.Warn("ProcessOrder activity rejected", "orderId", orderID, "error", err)
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
		}
		logger.Error("ProcessOrder activity failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("ProcessOrder activity completed", "orderId", order.ID, "status", string(order.Status))
	return order, nil
}

func classifyBusinessError(err error) string {
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return orderworkflows.OrderNotFoundErrorType
	case errors.Is(err, ordersdomain.ErrInvalidTransition):
		return orderworkflows.InvalidTransitionErrorType
	case errors.Is(err, ordersapp.ErrInsufficientStock):
		return orderworkflows.InsufficientStockErrorType
	}
	return ""
}
