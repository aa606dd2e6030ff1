package mapper

import (
	customerdomain "github.com/commercekit/go-order-api/internal/domains/customers/domain"
)

// Customer represents the transport-layer shape used by the HTTP handlers.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// ToDomainCustomer converts a transport customer into the domain model.
func ToDomainCustomer(customer Customer) (*customerdomain.Customer, error) {
	return customerdomain.NewCustomer(customer.ID, customer.Name, customer.Email)
}

// FromDomainCustomer converts a domain customer to the transport representation.
func FromDomainCustomer(customer *customerdomain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:    customer.ID,
		Name:  customer.Name,
		Email: customer.Email,
	}
}

// FromDomainCustomerList converts a list of domain customers.
func FromDomainCustomerList(customers []*customerdomain.Customer) []Customer {
	out := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		out = append(out, FromDomainCustomer(customer))
	}
	return out
}
