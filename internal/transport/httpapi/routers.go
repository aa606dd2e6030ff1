// Package httpapi exposes the order API over gin, one handler group per
// bounded context.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and path pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server routes.
type Routes []Route

// ApiHandleFunctions groups the per-context API handlers registered on the router.
type ApiHandleFunctions struct {
	CustomersAPI CustomersAPI
	ProductsAPI  ProductsAPI
	OrdersAPI    OrdersAPI
}

// NewRouter returns a new gin router with all API routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers the API routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	return Routes{
		{
			Name:        "CreateCustomer",
			Method:      http.MethodPost,
			Pattern:     "/v1/customers",
			HandlerFunc: handleFunctions.CustomersAPI.CreateCustomer,
		},
		{
			Name:        "GetCustomerById",
			Method:      http.MethodGet,
			Pattern:     "/v1/customers/:customerId",
			HandlerFunc: handleFunctions.CustomersAPI.GetCustomerById,
		},
		{
			Name:        "DeleteCustomer",
			Method:      http.MethodDelete,
			Pattern:     "/v1/customers/:customerId",
			HandlerFunc: handleFunctions.CustomersAPI.DeleteCustomer,
		},
		{
			Name:        "ListCustomers",
			Method:      http.MethodGet,
			Pattern:     "/v1/customers",
			HandlerFunc: handleFunctions.CustomersAPI.ListCustomers,
		},
		{
			Name:        "CreateProduct",
			Method:      http.MethodPost,
			Pattern:     "/v1/products",
			HandlerFunc: handleFunctions.ProductsAPI.CreateProduct,
		},
		{
			Name:        "GetProductById",
			Method:      http.MethodGet,
			Pattern:     "/v1/products/:productId",
			HandlerFunc: handleFunctions.ProductsAPI.GetProductById,
		},
		{
			Name:        "ListProducts",
			Method:      http.MethodGet,
			Pattern:     "/v1/products",
			HandlerFunc: handleFunctions.ProductsAPI.ListProducts,
		},
		{
			Name:        "PlaceOrder",
			Method:      http.MethodPost,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrdersAPI.PlaceOrder,
		},
		{
			Name:        "GetOrderById",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders/:orderId",
			HandlerFunc: handleFunctions.OrdersAPI.GetOrderById,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/v1/orders",
			HandlerFunc: handleFunctions.OrdersAPI.ListOrders,
		},
	}
}
