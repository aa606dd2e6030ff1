// Package types holds the command and view shapes shared between the orders
// application service, its ports, and the workflow adapters.
package types

import (
	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
)

// LineRequest is one requested (product, quantity) pair. Prices are never
// accepted from the client; they are resolved from the catalog.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// PlaceOrderInput is the command accepted by the order placement workflow.
type PlaceOrderInput struct {
	CustomerID     string
	Lines          []LineRequest
	IdempotencyKey string
}

// CustomerRef is the orders-context view of a customer.
type CustomerRef struct {
	ID   string
	Name string
}

// CatalogProduct is the orders-context view of a catalog entry at the
// instant it was resolved.
type CatalogProduct struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
}

// QuantityUpdate carries the new stock count for one product and nothing
// else, so the catalog batch write can never touch price or name.
type QuantityUpdate struct {
	ProductID string
	Quantity  int
}

// StagedOrder is the outcome of the validation-and-persist phase: the
// durable order plus the inventory writes still owed to the catalog.
type StagedOrder struct {
	Order   *domain.Order
	Updates []QuantityUpdate
}
