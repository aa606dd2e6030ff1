package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/commercekit/go-order-api/internal/domains/catalog/domain"
	"github.com/commercekit/go-order-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.products[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) GetByName(_ context.Context, name string) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if product.Name == name {
			clone := *product
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

// FindAllByID resolves the listed ids, silently skipping unknown ones.
func (r *Repository) FindAllByID(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make([]*domain.Product, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.products[id]; ok {
			clone := *product
			found = append(found, &clone)
		}
	}
	return found, nil
}

// UpdateQuantities overwrites only the quantity field of each listed
// product. Unknown ids are skipped, mirroring FindAllByID.
func (r *Repository) UpdateQuantities(_ context.Context, updates []ports.QuantityUpdate) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := make([]*domain.Product, 0, len(updates))
	for _, update := range updates {
		product, ok := r.products[update.ProductID]
		if !ok {
			continue
		}
		if err := product.SetQuantity(update.Quantity); err != nil {
			return nil, err
		}
		clone := *product
		saved = append(saved, &clone)
	}
	return saved, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}
