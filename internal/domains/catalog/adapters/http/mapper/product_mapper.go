package mapper

import (
	catalogdomain "github.com/commercekit/go-order-api/internal/domains/catalog/domain"
)

// Product represents the transport-layer shape used by the HTTP handlers.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required"`
	Quantity int     `json:"quantity"`
}

// ToDomainProduct converts a transport product into the domain model.
func ToDomainProduct(product Product) (*catalogdomain.Product, error) {
	return catalogdomain.NewProduct(product.ID, product.Name, product.Price, product.Quantity)
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}

// FromDomainProductList converts a list of domain products.
func FromDomainProductList(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		out = append(out, FromDomainProduct(product))
	}
	return out
}
