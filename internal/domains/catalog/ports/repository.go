package ports

import (
	"context"
	"errors"

	"github.com/commercekit/go-order-api/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")
var ErrDuplicateName = errors.New("product name already registered")

// QuantityUpdate carries the new stock count for one product. It
// deliberately holds nothing but id and quantity: the batch update must
// never be able to alter price or name as a side effect.
type QuantityUpdate struct {
	ProductID string
	Quantity  int
}

// Repository persists catalog products and exposes the batch operations
// the order workflow depends on.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	// FindAllByID resolves all listed ids in one call. Ids absent from the
	// catalog are omitted from the result, not reported as an error.
	FindAllByID(ctx context.Context, ids []string) ([]*domain.Product, error)
	// UpdateQuantities overwrites the quantity field of the listed products
	// as one batch write, leaving every other field untouched.
	UpdateQuantities(ctx context.Context, updates []QuantityUpdate) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
