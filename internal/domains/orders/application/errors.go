package application

import (
	"errors"
	"fmt"

	"github.com/commercekit/go-order-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrCustomerNotFound signals the requested customer id has no record.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound signals a requested product id is not in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock signals a requested quantity exceeds the available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductNotFoundError names the offending product id.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q does not exist", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

// InsufficientStockError names the offending product and the quantities involved.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("requested quantity %d exceeds available stock %d for product %q",
		e.Requested, e.Available, e.ProductName)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCustomerID) ||
		errors.Is(err, domain.ErrNoLines) ||
		errors.Is(err, domain.ErrEmptyProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidPrice) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
