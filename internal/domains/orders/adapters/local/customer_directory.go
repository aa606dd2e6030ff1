// Package local bridges the orders context to the customers and catalog
// contexts living in the same process.
package local

import (
	"context"
	"errors"

	customerports "github.com/commercekit/go-order-api/internal/domains/customers/ports"
	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	orderports "github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

var _ orderports.CustomerDirectory = (*CustomerDirectory)(nil)

// CustomerDirectory adapts the customers repository to the orders-context
// directory port.
type CustomerDirectory struct {
	repo customerports.Repository
}

func NewCustomerDirectory(repo customerports.Repository) *CustomerDirectory {
	return &CustomerDirectory{repo: repo}
}

func (d *CustomerDirectory) GetByID(ctx context.Context, id string) (*types.CustomerRef, error) {
	if d == nil || d.repo == nil {
		return nil, errors.New("customer directory not configured")
	}
	customer, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerports.ErrNotFound) {
			return nil, orderports.ErrUnknownCustomer
		}
		return nil, err
	}
	return &types.CustomerRef{ID: customer.ID, Name: customer.Name}, nil
}
