package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	productmapper "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/commercekit/go-order-api/internal/domains/catalog/ports"
)

// ProductsAPI wires HTTP transport with the catalog bounded context service.
type ProductsAPI struct {
	service catalogports.Service
}

// NewProductsAPI creates a ProductsAPI backed by the provided service.
func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Post /v1/products
// Add a product to the catalog
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload productmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := productmapper.ToDomainProduct(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productmapper.FromDomainProduct(saved))
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductsAPI) GetProductById(c *gin.Context) {
	product, err := api.service.GetProductByID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProduct(product))
}

// Get /v1/products
// List catalog products
func (api *ProductsAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondProductServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProductList(products))
}
