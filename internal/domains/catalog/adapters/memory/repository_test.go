package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/commercekit/go-order-api/internal/domains/catalog/domain"
	"github.com/commercekit/go-order-api/internal/domains/catalog/ports"
)

func seedRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository()
	for _, spec := range []struct {
		id       string
		name     string
		price    float64
		quantity int
	}{
		{"p1", "widget", 9.99, 10},
		{"p2", "gadget", 25.50, 3},
	} {
		product, err := domain.NewProduct(spec.id, spec.name, spec.price, spec.quantity)
		require.NoError(t, err)
		_, err = repo.Save(context.Background(), product)
		require.NoError(t, err)
	}
	return repo
}

func TestFindAllByID_ReturnsSubsetForUnknownIDs(t *testing.T) {
	repo := seedRepo(t)

	found, err := repo.FindAllByID(context.Background(), []string{"p1", "missing", "p2"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, "p1", found[0].ID)
	require.Equal(t, "p2", found[1].ID)
}

func TestFindAllByID_DeduplicatesIDs(t *testing.T) {
	repo := seedRepo(t)

	found, err := repo.FindAllByID(context.Background(), []string{"p1", "p1", "p1"})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestUpdateQuantities_TouchesOnlyQuantity(t *testing.T) {
	repo := seedRepo(t)

	saved, err := repo.UpdateQuantities(context.Background(), []ports.QuantityUpdate{
		{ProductID: "p1", Quantity: 6},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	product, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, 6, product.Quantity)
	require.Equal(t, "widget", product.Name)
	require.Equal(t, 9.99, product.Price)
}

func TestUpdateQuantities_SkipsUnknownIDs(t *testing.T) {
	repo := seedRepo(t)

	saved, err := repo.UpdateQuantities(context.Background(), []ports.QuantityUpdate{
		{ProductID: "ghost", Quantity: 1},
		{ProductID: "p2", Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "p2", saved[0].ID)
}

func TestGetByID_Unknown(t *testing.T) {
	repo := NewRepository()

	_, err := repo.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSave_AssignsIDWhenBlank(t *testing.T) {
	repo := NewRepository()
	product, err := domain.NewProduct("", "thing", 1.25, 5)
	require.NoError(t, err)

	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
}

func TestSave_DoesNotShareMemoryWithCaller(t *testing.T) {
	repo := seedRepo(t)

	product, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	product.Quantity = 0

	again, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, 10, again.Quantity)
}
