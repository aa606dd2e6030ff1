package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("customer email is invalid")
)

// Customer represents a buyer able to place orders.
type Customer struct {
	ID    string
	Name  string
	Email string
}

// NewCustomer validates the invariants and builds a new Customer.
func NewCustomer(id, name, email string) (*Customer, error) {
	c := &Customer{ID: strings.TrimSpace(id)}
	if err := c.Rename(name); err != nil {
		return nil, err
	}
	if err := c.UpdateEmail(email); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename mutates the customer name ensuring the invariant.
func (c *Customer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// UpdateEmail stores a normalized email address.
func (c *Customer) UpdateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if err := c.Rename(c.Name); err != nil {
		return err
	}
	return c.UpdateEmail(c.Email)
}
