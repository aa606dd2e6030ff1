package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyCustomerID = errors.New("order customer id is required")
	ErrNoLines         = errors.New("order must contain at least one line")
	ErrEmptyProductID  = errors.New("line product id is required")
	ErrInvalidQuantity = errors.New("line quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("line unit price must be greater than zero")
)

// Line is one (product, price-snapshot, quantity) entry within an order.
// UnitPrice is the catalog price captured at placement time; later catalog
// repricing never changes it.
type Line struct {
	ProductID string
	UnitPrice float64
	Quantity  int
}

// NewLine validates and builds an order line.
func NewLine(productID string, unitPrice float64, quantity int) (Line, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Line{}, ErrEmptyProductID
	}
	if unitPrice <= 0 {
		return Line{}, ErrInvalidPrice
	}
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{ProductID: productID, UnitPrice: unitPrice, Quantity: quantity}, nil
}

// Subtotal is the line contribution to the order total.
func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Order is a placed purchase: a customer reference plus an ordered sequence
// of lines. The line set is fixed once the order is created.
type Order struct {
	ID         string
	CustomerID string
	Lines      []Line
	CreatedAt  time.Time
}

// NewOrder validates the invariants and builds a new Order.
func NewOrder(customerID string, lines []Line) (*Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrEmptyCustomerID
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	order := &Order{CustomerID: customerID, Lines: append([]Line{}, lines...)}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Total sums the line subtotals.
func (o *Order) Total() float64 {
	var total float64
	for _, line := range o.Lines {
		total += line.Subtotal()
	}
	return total
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.CustomerID) == "" {
		return ErrEmptyCustomerID
	}
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	for _, line := range o.Lines {
		if _, err := NewLine(line.ProductID, line.UnitPrice, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}
