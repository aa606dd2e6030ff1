package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customermapper "github.com/commercekit/go-order-api/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/commercekit/go-order-api/internal/domains/customers/ports"
)

// CustomersAPI wires HTTP transport with the customers bounded context service.
type CustomersAPI struct {
	service customerports.Service
}

// NewCustomersAPI creates a CustomersAPI backed by the provided service.
func NewCustomersAPI(service customerports.Service) CustomersAPI {
	return CustomersAPI{service: service}
}

// Post /v1/customers
// Register a new customer
func (api *CustomersAPI) CreateCustomer(c *gin.Context) {
	var payload customermapper.Customer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	customer, err := customermapper.ToDomainCustomer(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateCustomer(c.Request.Context(), customer)
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customermapper.FromDomainCustomer(saved))
}

// Get /v1/customers/:customerId
// Find customer by ID
func (api *CustomersAPI) GetCustomerById(c *gin.Context) {
	customer, err := api.service.GetCustomerByID(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomer(customer))
}

// Delete /v1/customers/:customerId
// Remove a customer
func (api *CustomersAPI) DeleteCustomer(c *gin.Context) {
	if err := api.service.DeleteCustomer(c.Request.Context(), c.Param("customerId")); err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/customers
// List registered customers
func (api *CustomersAPI) ListCustomers(c *gin.Context) {
	customers, err := api.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomerList(customers))
}
