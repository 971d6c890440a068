package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/example/inventory-service/internal/domains/orders/domain"
)

const (
	// FulfillmentWorkflowName is the public identifier for registering the workflow.
	FulfillmentWorkflowName = "orders.workflows.Fulfillment"
	// FulfillmentTaskQueue is the queue consumed by the worker processing order workflows.
	FulfillmentTaskQueue = "ORDER_FULFILLMENT"

	// ProcessOrderActivityName runs the stock-decrementing fulfillment transaction.
	ProcessOrderActivityName = "orders.activities.ProcessOrder"
)

// FulfillmentWorkflowInput identifies the order to fulfill.
type FulfillmentWorkflowInput struct {
	OrderID int64
	TraceID string
}

// FulfillmentWorkflow drives an order from created to completed. The heavy
// lifting happens in a single activity so the stock decrement and the status
// flip share one database transaction; the workflow adds durable retries
// around transient failures.
func FulfillmentWorkflow(ctx workflow.Context, input FulfillmentWorkflowInput) (*ordersdomain.PurchaseOrder, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("FulfillmentWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			// Business rejections never succeed on retry.
			NonRetryableErrorTypes: []string{
				OrderNotFoundErrorType,
				InvalidTransitionErrorType,
				InsufficientStockErrorType,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order ordersdomain.PurchaseOrder
	if err := workflow.ExecuteActivity(ctx, ProcessOrderActivityName, input.OrderID).Get(ctx, &order); err != nil {
		logger.Error("FulfillmentWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("FulfillmentWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID, "status", string(order.Status))...)
	return &order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
