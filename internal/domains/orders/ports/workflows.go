package ports

import (
	"context"

	"github.com/example/inventory-service/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable fulfillment operations. Processing an
// order decrements real stock, so deployments that want crash-safe
// execution route it through a workflow engine instead of calling the
// service inline.
type WorkflowOrchestrator interface {
	ProcessOrder(ctx context.Context, orderID int64) (*domain.PurchaseOrder, error)
}
