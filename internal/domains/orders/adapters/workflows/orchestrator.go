package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/example/inventory-service/internal/domains/orders/application"
	ordersdomain "github.com/example/inventory-service/internal/domains/orders/domain"
	"github.com/example/inventory-service/internal/domains/orders/ports"
	orderworkflows "github.com/example/inventory-service/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts fulfillment workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.FulfillmentTaskQueue}
}

// ProcessOrder starts the durable fulfillment workflow and waits for its
// result. The workflow ID is keyed on the order, so a second process request
// for the same order attaches to the running execution instead of racing it.
func (o *TemporalOrderWorkflows) ProcessOrder(ctx context.Context, orderID int64) (*ordersdomain.PurchaseOrder, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-fulfillment-%d", orderID),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.FulfillmentWorkflow,
		orderworkflows.FulfillmentWorkflowInput{OrderID: orderID, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var order ordersdomain.PurchaseOrder
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, restoreBusinessError(err)
			}
			return &order, nil
		}
		return nil, err
	}
	var order ordersdomain.PurchaseOrder
	if err := run.Get(ctx, &order); err != nil {
		return nil, restoreBusinessError(err)
	}
	return &order, nil
}

// restoreBusinessError rewraps business rejections that crossed the Temporal
// wire. Only the application error type and message survive serialization,
// so the matching sentinel is rebuilt from the type tag; anything else is
// returned untouched.
func restoreBusinessError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderworkflows.OrderNotFoundErrorType:
		return sentinelWithMessage(ports.ErrNotFound, appErr.Message())
	case orderworkflows.InvalidTransitionErrorType:
		return sentinelWithMessage(ordersdomain.ErrInvalidTransition, appErr.Message())
	case orderworkflows.InsufficientStockErrorType:
		return sentinelWithMessage(ordersapp.ErrInsufficientStock, appErr.Message())
	}
	return err
}

// sentinelWithMessage wraps the sentinel so errors.Is matches again while
// keeping the activity's original message intact.
func sentinelWithMessage(sentinel error, message string) error {
	if message == "" || message == sentinel.Error() {
		return sentinel
	}
	if rest, ok := strings.CutPrefix(message, sentinel.Error()); ok {
		return fmt.Errorf("%w%s", sentinel, rest)
	}
	return fmt.Errorf("%w: %s", sentinel, message)
}

// InlineOrderWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the order service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// ProcessOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) ProcessOrder(ctx context.Context, orderID int64) (*ordersdomain.PurchaseOrder, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.ProcessOrder(ctx, orderID)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
