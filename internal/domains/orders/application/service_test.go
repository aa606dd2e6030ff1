package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
	"github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

type fakeOrderRepo struct {
	orders      map[string]*domain.Order
	createCalls int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.createCalls++
	copy := *order
	copy.ID = fmt.Sprintf("order-%d", len(f.orders)+1)
	copy.CreatedAt = time.Now().UTC()
	f.orders[copy.ID] = &copy
	return &copy, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	if order, ok := f.orders[id]; ok {
		copy := *order
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	var list []*domain.Order
	for _, order := range f.orders {
		copy := *order
		list = append(list, &copy)
	}
	return list, nil
}

func (f *fakeOrderRepo) ListByProduct(_ context.Context, productID string) ([]*domain.Order, error) {
	var list []*domain.Order
	for _, order := range f.orders {
		for _, line := range order.Lines {
			if line.ProductID == productID {
				copy := *order
				list = append(list, &copy)
				break
			}
		}
	}
	return list, nil
}

type fakeDirectory struct {
	customers map[string]types.CustomerRef
	calls     int
}

func newFakeDirectory(ids ...string) *fakeDirectory {
	d := &fakeDirectory{customers: map[string]types.CustomerRef{}}
	for _, id := range ids {
		d.customers[id] = types.CustomerRef{ID: id, Name: "customer " + id}
	}
	return d
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (*types.CustomerRef, error) {
	f.calls++
	if ref, ok := f.customers[id]; ok {
		return &ref, nil
	}
	return nil, ports.ErrUnknownCustomer
}

type fakeCatalog struct {
	products    map[string]types.CatalogProduct
	findCalls   int
	updateCalls int
	updateErr   error
	lastUpdates []types.QuantityUpdate
}

func newFakeCatalog(products ...types.CatalogProduct) *fakeCatalog {
	c := &fakeCatalog{products: map[string]types.CatalogProduct{}}
	for _, product := range products {
		c.products[product.ID] = product
	}
	return c
}

func (f *fakeCatalog) FindAllByID(_ context.Context, ids []string) ([]types.CatalogProduct, error) {
	f.findCalls++
	var found []types.CatalogProduct
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			found = append(found, product)
		}
	}
	return found, nil
}

func (f *fakeCatalog) UpdateQuantities(_ context.Context, updates []types.QuantityUpdate) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.lastUpdates = updates
	for _, update := range updates {
		product := f.products[update.ProductID]
		product.Quantity = update.Quantity
		f.products[update.ProductID] = product
	}
	return nil
}

type fakeIdempotencyStore struct {
	records map[string]ports.IdempotencyRecord
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{records: map[string]ports.IdempotencyRecord{}}
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	if record, ok := f.records[key]; ok {
		return &record, nil
	}
	return nil, nil
}

func (f *fakeIdempotencyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if existing, ok := f.records[record.Key]; ok {
		if existing.RequestHash != record.RequestHash || existing.OrderID != record.OrderID {
			return &existing, ports.ErrIdempotencyConflict
		}
		return &existing, nil
	}
	f.records[record.Key] = record
	return &record, nil
}

func seededCatalog() *fakeCatalog {
	return newFakeCatalog(
		types.CatalogProduct{ID: "p1", Name: "widget", Price: 9.99, Quantity: 10},
		types.CatalogProduct{ID: "p2", Name: "gadget", Price: 25.50, Quantity: 3},
	)
}

func TestPlaceOrder_SnapshotsPricesAndDecrementsStock(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	order, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines: []types.LineRequest{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, "c1", order.CustomerID)
	require.Len(t, order.Lines, 2)
	require.Equal(t, 9.99, order.Lines[0].UnitPrice)
	require.Equal(t, 25.50, order.Lines[1].UnitPrice)
	require.InDelta(t, 4*9.99+25.50, order.Total(), 1e-9)

	require.Equal(t, 6, catalog.products["p1"].Quantity)
	require.Equal(t, 2, catalog.products["p2"].Quantity)
}

func TestPlaceOrder_OneBatchLookupAndOneBatchWrite(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines: []types.LineRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "p2", Quantity: 1},
			{ProductID: "p1", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, catalog.findCalls)
	require.Equal(t, 1, catalog.updateCalls)
	require.Len(t, catalog.lastUpdates, 2)
	require.Equal(t, 7, catalog.products["p1"].Quantity)
}

func TestPlaceOrder_ExactStockBoundarySucceeds(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines:      []types.LineRequest{{ProductID: "p2", Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, 0, catalog.products["p2"].Quantity)
}

func TestPlaceOrder_EmptyLines(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{CustomerID: "c1"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Zero(t, repo.createCalls)
	require.Zero(t, catalog.findCalls)
}

func TestPlaceOrder_UnknownCustomer(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory(), catalog)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "ghost",
		Lines:      []types.LineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.ErrorIs(t, err, ErrCustomerNotFound)
	require.Zero(t, catalog.findCalls)
	require.Zero(t, repo.createCalls)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines: []types.LineRequest{
			{ProductID: "p1", Quantity: 1},
			{ProductID: "missing", Quantity: 1},
		},
	})
	require.ErrorIs(t, err, ErrProductNotFound)
	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "missing", notFound.ProductID)
	require.Zero(t, repo.createCalls)
	require.Zero(t, catalog.updateCalls)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines:      []types.LineRequest{{ProductID: "p2", Quantity: 4}},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "p2", stockErr.ProductID)
	require.Equal(t, "gadget", stockErr.ProductName)
	require.Equal(t, 4, stockErr.Requested)
	require.Equal(t, 3, stockErr.Available)
	require.Zero(t, repo.createCalls)
	require.Zero(t, catalog.updateCalls)
	require.Equal(t, 3, catalog.products["p2"].Quantity)
}

func TestPlaceOrder_RepeatedLinesCountAgainstStockTogether(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	// Each line alone fits inside the 3 in stock; together they do not.
	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines: []types.LineRequest{
			{ProductID: "p2", Quantity: 2},
			{ProductID: "p2", Quantity: 2},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Zero(t, repo.createCalls)
	require.Equal(t, 3, catalog.products["p2"].Quantity)
}

func TestPlaceOrder_CommitFailureLeavesOrderPlaced(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	catalog.updateErr = errors.New("catalog write failed")
	svc := NewService(repo, newFakeDirectory("c1"), catalog)

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines:      []types.LineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.Error(t, err)
	// The order write is the commit point; the stock write failing afterwards
	// does not roll it back.
	require.Equal(t, 1, repo.createCalls)
	require.Equal(t, 10, catalog.products["p1"].Quantity)
}

func TestPlaceOrder_IdempotentReplay(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog,
		WithIdempotencyStore(newFakeIdempotencyStore()))

	input := types.PlaceOrderInput{
		CustomerID:     "c1",
		Lines:          []types.LineRequest{{ProductID: "p1", Quantity: 2}},
		IdempotencyKey: "retry-123",
	}
	first, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, repo.createCalls)
	require.Equal(t, 8, catalog.products["p1"].Quantity)
}

func TestPlaceOrder_IdempotencyKeyReuseWithDifferentPayload(t *testing.T) {
	repo := newFakeOrderRepo()
	catalog := seededCatalog()
	svc := NewService(repo, newFakeDirectory("c1"), catalog,
		WithIdempotencyStore(newFakeIdempotencyStore()))

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID:     "c1",
		Lines:          []types.LineRequest{{ProductID: "p1", Quantity: 2}},
		IdempotencyKey: "retry-123",
	})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID:     "c1",
		Lines:          []types.LineRequest{{ProductID: "p1", Quantity: 5}},
		IdempotencyKey: "retry-123",
	})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.Equal(t, 1, repo.createCalls)
}

func TestGetOrderByID_Unknown(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeDirectory("c1"), seededCatalog())

	_, err := svc.GetOrderByID(context.Background(), "nope")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListOrdersByProduct(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo, newFakeDirectory("c1"), seededCatalog())

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines:      []types.LineRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: "c1",
		Lines:      []types.LineRequest{{ProductID: "p2", Quantity: 1}},
	})
	require.NoError(t, err)

	withP1, err := svc.ListOrdersByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, withP1, 1)
	all, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
}
