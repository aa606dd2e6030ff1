package ports

import (
	"context"
	"errors"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
)

// ErrUnknownCustomer is returned by CustomerDirectory when the id has no
// matching record.
var ErrUnknownCustomer = errors.New("customer not known to directory")

// CustomerDirectory resolves customer ids for order placement. Only
// existence matters to the workflow.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id string) (*types.CustomerRef, error)
}

// ProductCatalog is the inventory collaborator the workflow depends on.
type ProductCatalog interface {
	// FindAllByID resolves the listed ids in a single call. Ids absent from
	// the catalog are omitted from the result; callers must detect the
	// omission themselves.
	FindAllByID(ctx context.Context, ids []string) ([]types.CatalogProduct, error)
	// UpdateQuantities persists the new stock counts as one batch write
	// that touches only the quantity field.
	UpdateQuantities(ctx context.Context, updates []types.QuantityUpdate) error
}
