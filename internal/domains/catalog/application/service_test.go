package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/commercekit/go-order-api/internal/domains/catalog/adapters/memory"
	"github.com/commercekit/go-order-api/internal/domains/catalog/domain"
	"github.com/commercekit/go-order-api/internal/domains/catalog/ports"
)

func TestCreateProduct(t *testing.T) {
	svc := NewService(memory.NewRepository())

	product, err := domain.NewProduct("", "widget", 9.99, 10)
	require.NoError(t, err)
	created, err := svc.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	fetched, err := svc.GetProductByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "widget", fetched.Name)
	require.Equal(t, 10, fetched.Quantity)
}

func TestCreateProduct_RejectsDuplicateName(t *testing.T) {
	svc := NewService(memory.NewRepository())

	first, err := domain.NewProduct("", "widget", 9.99, 10)
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), first)
	require.NoError(t, err)

	second, err := domain.NewProduct("", "widget", 4.00, 2)
	require.NoError(t, err)
	_, err = svc.CreateProduct(context.Background(), second)
	require.ErrorIs(t, err, ports.ErrDuplicateName)
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateProduct(context.Background(), &domain.Product{Name: "widget", Price: -1, Quantity: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListProducts(t *testing.T) {
	svc := NewService(memory.NewRepository())
	for _, name := range []string{"widget", "gadget"} {
		product, err := domain.NewProduct("", name, 5, 1)
		require.NoError(t, err)
		_, err = svc.CreateProduct(context.Background(), product)
		require.NoError(t, err)
	}

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
}
