package mapper

import (
	"time"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
	orderdomain "github.com/commercekit/go-order-api/internal/domains/orders/domain"
)

// PlaceOrderRequest is the transport shape accepted when placing an order.
// No price field exists on purpose: prices come from the catalog.
type PlaceOrderRequest struct {
	CustomerID string          `json:"customerId" binding:"required"`
	Products   []RequestedItem `json:"products" binding:"required"`
}

// RequestedItem pairs a product id with the requested quantity.
type RequestedItem struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// Order is the transport representation of a placed order.
type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Lines      []Line    `json:"lines"`
	Total      float64   `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Line is the transport representation of one order line.
type Line struct {
	ProductID string  `json:"productId"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// ToPlaceOrderInput converts the transport request into the placement command.
func ToPlaceOrderInput(request PlaceOrderRequest, idempotencyKey string) types.PlaceOrderInput {
	lines := make([]types.LineRequest, 0, len(request.Products))
	for _, item := range request.Products {
		lines = append(lines, types.LineRequest{ProductID: item.ID, Quantity: item.Quantity})
	}
	return types.PlaceOrderInput{
		CustomerID:     request.CustomerID,
		Lines:          lines,
		IdempotencyKey: idempotencyKey,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	lines := make([]Line, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, Line{
			ProductID: line.ProductID,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return Order{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Lines:      lines,
		Total:      order.Total(),
		CreatedAt:  order.CreatedAt,
	}
}

// FromDomainOrderList converts a list of domain orders.
func FromDomainOrderList(orders []*orderdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}
