package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/commercekit/go-order-api/internal/platform/temporal/activities/orders"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Command types.PlaceOrderInput
	TraceID string
}

// OrderPlacementWorkflow stages the order and then commits the inventory
// decrement as a separate retried activity, so a crash between the two
// persistence writes no longer strands a placed order without its stock
// decrement.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "customerId", input.Command.CustomerID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var staged types.StagedOrder
	if err := workflow.ExecuteActivity(ctx, orderactivities.StageOrderActivityName, input.Command).Get(ctx, &staged); err != nil {
		logger.Error("OrderPlacementWorkflow failed to stage order", withTraceID(input.TraceID, "customerId", input.Command.CustomerID, "error", err)...)
		return nil, err
	}
	if err := workflow.ExecuteActivity(ctx, orderactivities.CommitInventoryActivityName, staged.Updates).Get(ctx, nil); err != nil {
		logger.Error("OrderPlacementWorkflow failed to commit inventory", withTraceID(input.TraceID, "orderId", staged.Order.ID, "error", err)...)
		return nil, err
	}

	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", staged.Order.ID)...)
	return staged.Order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
