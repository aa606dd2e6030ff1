package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	orderports "github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

const (
	// StageOrderActivityName validates, prices, and persists the order.
	StageOrderActivityName = "orders.activities.StageOrder"
	// CommitInventoryActivityName applies the pending quantity decrements.
	CommitInventoryActivityName = "orders.activities.CommitInventory"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	sequence orderports.PlacementSequence
}

// NewActivities wires the placement sequence into the Temporal activities bundle.
func NewActivities(sequence orderports.PlacementSequence) *Activities {
	return &Activities{sequence: sequence}
}

// StageOrder runs the validation-and-persist phase of order placement.
func (a *Activities) StageOrder(ctx context.Context, input types.PlaceOrderInput) (*types.StagedOrder, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.sequence == nil {
		logger.Error("stage order activity not initialized", "customerId", input.CustomerID)
		return nil, errors.New("stage order activity not initialized")
	}
	logger.Info("StageOrder activity started", "customerId", input.CustomerID)
	staged, err := a.sequence.StageOrder(ctx, input)
	if err != nil {
		logger.Error("StageOrder activity failed", "customerId", input.CustomerID, "error", err)
		return nil, err
	}
	logger.Info("StageOrder activity completed", "orderId", staged.Order.ID)
	return staged, nil
}

// CommitInventory applies the staged quantity writes; retried until the
// catalog accepts the batch.
func (a *Activities) CommitInventory(ctx context.Context, updates []types.QuantityUpdate) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.sequence == nil {
		logger.Error("commit inventory activity not initialized")
		return errors.New("commit inventory activity not initialized")
	}
	logger.Info("CommitInventory activity started", "updates", len(updates))
	if err := a.sequence.CommitInventory(ctx, updates); err != nil {
		logger.Error("CommitInventory activity failed", "error", err)
		return err
	}
	logger.Info("CommitInventory activity completed", "updates", len(updates))
	return nil
}
