package local

import (
	"context"
	"errors"

	catalogports "github.com/commercekit/go-order-api/internal/domains/catalog/ports"
	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	orderports "github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

var _ orderports.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog adapts the catalog repository to the orders-context
// inventory port.
type ProductCatalog struct {
	repo catalogports.Repository
}

func NewProductCatalog(repo catalogports.Repository) *ProductCatalog {
	return &ProductCatalog{repo: repo}
}

func (c *ProductCatalog) FindAllByID(ctx context.Context, ids []string) ([]types.CatalogProduct, error) {
	if c == nil || c.repo == nil {
		return nil, errors.New("product catalog not configured")
	}
	products, err := c.repo.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]types.CatalogProduct, 0, len(products))
	for _, product := range products {
		views = append(views, types.CatalogProduct{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: product.Quantity,
		})
	}
	return views, nil
}

// UpdateQuantities forwards the batch write, constructing update records
// that carry only id and quantity.
func (c *ProductCatalog) UpdateQuantities(ctx context.Context, updates []types.QuantityUpdate) error {
	if c == nil || c.repo == nil {
		return errors.New("product catalog not configured")
	}
	batch := make([]catalogports.QuantityUpdate, 0, len(updates))
	for _, update := range updates {
		batch = append(batch, catalogports.QuantityUpdate{
			ProductID: update.ProductID,
			Quantity:  update.Quantity,
		})
	}
	_, err := c.repo.UpdateQuantities(ctx, batch)
	return err
}
