package application

import (
	"context"
	"errors"

	"github.com/commercekit/go-order-api/internal/domains/customers/domain"
	"github.com/commercekit/go-order-api/internal/domains/customers/ports"
)

// Service orchestrates the customers bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateCustomer registers a new customer, rejecting duplicate emails.
func (s *Service) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	if err := customer.Validate(); err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetByEmail(ctx, customer.Email)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ports.ErrDuplicateEmail
	}
	return s.repo.Save(ctx, customer)
}

func (s *Service) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
