package ports

import (
	"context"
	"errors"

	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. Create is the workflow's commit point: once
// it returns without error the order is durable.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListByProduct(ctx context.Context, productID string) ([]*domain.Order, error)
}
