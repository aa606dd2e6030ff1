package ports

import (
	"context"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator routes order placement either inline or through a
// durable workflow engine.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
}
