package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/commercekit/go-order-api/internal/domains/orders/adapters/http/mapper"
	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	orderdomain "github.com/commercekit/go-order-api/internal/domains/orders/domain"
	orderports "github.com/commercekit/go-order-api/internal/domains/orders/ports"
)

// IdempotencyKeyHeader carries the client-chosen key that makes order
// placement safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrdersAPI wires HTTP transport with the orders bounded context service and workflows.
type OrdersAPI struct {
	service   orderports.Service
	workflows orderports.WorkflowOrchestrator
}

// NewOrdersAPI creates an OrdersAPI backed by the provided service.
func NewOrdersAPI(service orderports.Service, workflows orderports.WorkflowOrchestrator) OrdersAPI {
	return OrdersAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Place an order, reserving stock for every line
func (api *OrdersAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	input := ordermapper.ToPlaceOrderInput(payload, key)
	order, err := api.placeOrder(c.Request.Context(), input)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrdersAPI) placeOrder(ctx context.Context, input types.PlaceOrderInput) (*orderdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, input)
	}
	return api.service.PlaceOrder(ctx, input)
}

// Get /v1/orders/:orderId
// Find order by ID
func (api *OrdersAPI) GetOrderById(c *gin.Context) {
	order, err := api.service.GetOrderByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /v1/orders
// List orders, optionally filtered to those containing a product
func (api *OrdersAPI) ListOrders(c *gin.Context) {
	var (
		orders []*orderdomain.Order
		err    error
	)
	if productID := strings.TrimSpace(c.Query("productId")); productID != "" {
		orders, err = api.service.ListOrdersByProduct(c.Request.Context(), productID)
	} else {
		orders, err = api.service.ListOrders(c.Request.Context())
	}
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrderList(orders))
}
