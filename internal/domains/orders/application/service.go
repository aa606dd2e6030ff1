package application

import (
	"context"
	"errors"
	"strings"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
	"github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

// Service orchestrates the order placement workflow: customer validation,
// batch product resolution, stock checks, price capture, order persistence,
// and the inventory decrement.
type Service struct {
	repo        ports.Repository
	customers   ports.CustomerDirectory
	catalog     ports.ProductCatalog
	idempotency ports.IdempotencyStore
}

type Option func(*Service)

// WithIdempotencyStore enables replay of retried placement requests.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

func NewService(repo ports.Repository, customers ports.CustomerDirectory, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{repo: repo, customers: customers, catalog: catalog}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder runs the full placement workflow. Validation failures abort
// before anything is written; once the order itself is persisted it stays
// placed even if the inventory commit afterwards fails. There is no lock
// spanning the stock read and the stock write, so concurrent placements
// against overlapping products can oversell; callers needing stronger
// guarantees run the durable orchestrator instead.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	fingerprint, replayed, err := s.replayFromIdempotencyKey(ctx, input)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return replayed, nil
	}

	staged, err := s.StageOrder(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.CommitInventory(ctx, staged.Updates); err != nil {
		return nil, err
	}
	if err := s.rememberIdempotencyKey(ctx, input, fingerprint, staged.Order); err != nil {
		return nil, err
	}
	return staged.Order, nil
}

// StageOrder performs steps one through four of the workflow: resolve the
// customer, batch-resolve the products, validate stock, snapshot prices,
// and persist the order. The returned updates are the quantity writes the
// caller still owes the catalog.
func (s *Service) StageOrder(ctx context.Context, input types.PlaceOrderInput) (*types.StagedOrder, error) {
	if len(input.Lines) == 0 {
		return nil, mapError(domain.ErrNoLines)
	}

	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, ports.ErrUnknownCustomer) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	// One batch lookup for the distinct product set, never one per line.
	// The resolved quantity and price are authoritative for this placement.
	ids := distinctProductIDs(input.Lines)
	resolved, err := s.catalog.FindAllByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]types.CatalogProduct, len(resolved))
	for _, product := range resolved {
		byID[product.ID] = product
	}

	lines := make([]domain.Line, 0, len(input.Lines))
	requested := make(map[string]int, len(ids))
	for _, request := range input.Lines {
		product, ok := byID[request.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: request.ProductID}
		}
		// Stock is checked against the cumulative quantity requested for the
		// product so repeated lines cannot drive the count negative.
		requested[product.ID] += request.Quantity
		if requested[product.ID] > product.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   requested[product.ID],
				Available:   product.Quantity,
			}
		}
		line, err := domain.NewLine(product.ID, product.Price, request.Quantity)
		if err != nil {
			return nil, mapError(err)
		}
		lines = append(lines, line)
	}

	order, err := domain.NewOrder(input.CustomerID, lines)
	if err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	updates := make([]types.QuantityUpdate, 0, len(resolved))
	for _, product := range resolved {
		updates = append(updates, types.QuantityUpdate{
			ProductID: product.ID,
			Quantity:  product.Quantity - requested[product.ID],
		})
	}
	return &types.StagedOrder{Order: created, Updates: updates}, nil
}

// CommitInventory persists the decremented quantities as a single batch.
func (s *Service) CommitInventory(ctx context.Context, updates []types.QuantityUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return s.catalog.UpdateQuantities(ctx, updates)
}

func (s *Service) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListOrdersByProduct(ctx context.Context, productID string) ([]*domain.Order, error) {
	return s.repo.ListByProduct(ctx, productID)
}

// replayFromIdempotencyKey returns the previously placed order when the
// same key and payload are seen again, and ErrIdempotencyConflict when the
// key is reused with a different payload.
func (s *Service) replayFromIdempotencyKey(ctx context.Context, input types.PlaceOrderInput) (string, *domain.Order, error) {
	if s.idempotency == nil || strings.TrimSpace(input.IdempotencyKey) == "" {
		return "", nil, nil
	}
	fingerprint, err := FingerprintPlaceOrder(input)
	if err != nil {
		return "", nil, err
	}
	record, err := s.idempotency.Get(ctx, input.IdempotencyKey)
	if err != nil {
		return "", nil, err
	}
	if record == nil {
		return fingerprint, nil, nil
	}
	if record.RequestHash != fingerprint {
		return "", nil, ports.ErrIdempotencyConflict
	}
	order, err := s.repo.GetByID(ctx, record.OrderID)
	if err != nil {
		return "", nil, err
	}
	return fingerprint, order, nil
}

func (s *Service) rememberIdempotencyKey(ctx context.Context, input types.PlaceOrderInput, fingerprint string, order *domain.Order) error {
	if s.idempotency == nil || fingerprint == "" {
		return nil
	}
	_, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
		Key:         input.IdempotencyKey,
		RequestHash: fingerprint,
		OrderID:     order.ID,
	})
	return err
}

func distinctProductIDs(lines []types.LineRequest) []string {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		ids = append(ids, line.ProductID)
	}
	return ids
}

var (
	_ ports.Service           = (*Service)(nil)
	_ ports.PlacementSequence = (*Service)(nil)
)
