package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName       = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("product price must be greater than zero")
	ErrInvalidQuantity = errors.New("product quantity must not be negative")
)

// Product is a catalog entry with a mutable stock quantity.
// Price and name are read during order creation but never mutated by it.
type Product struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
}

// NewProduct validates the invariants and builds a new Product.
func NewProduct(id, name string, price float64, quantity int) (*Product, error) {
	p := &Product{ID: strings.TrimSpace(id)}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	if err := p.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice updates the unit price. Orders snapshot the price at placement
// time, so repricing never affects already placed orders.
func (p *Product) Reprice(price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// SetQuantity overwrites the available stock count.
func (p *Product) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	p.Quantity = quantity
	return nil
}

// HasStock reports whether the requested quantity can be served.
// A request equal to the available quantity is satisfiable.
func (p *Product) HasStock(requested int) bool {
	return requested <= p.Quantity
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if err := p.Rename(p.Name); err != nil {
		return err
	}
	if err := p.Reprice(p.Price); err != nil {
		return err
	}
	return p.SetQuantity(p.Quantity)
}
