package ports

import (
	"context"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	ListOrdersByProduct(ctx context.Context, productID string) ([]*domain.Order, error)
}

// PlacementSequence splits order placement into its two persistence phases
// so durable orchestration can retry the inventory commit independently of
// the already-committed order.
type PlacementSequence interface {
	// StageOrder runs validation, pricing, and order persistence, returning
	// the inventory writes still pending.
	StageOrder(ctx context.Context, input types.PlaceOrderInput) (*types.StagedOrder, error)
	// CommitInventory applies the pending quantity writes in one batch.
	CommitInventory(ctx context.Context, updates []types.QuantityUpdate) error
}
