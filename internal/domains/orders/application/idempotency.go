package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	types "github.com/commercekit/go-order-api/internal/domains/orders/application/types"
)

type normalizedPlaceOrderInput struct {
	CustomerID string               `json:"customerId"`
	Lines      []normalizedLineItem `json:"lines"`
}

type normalizedLineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// FingerprintPlaceOrder builds a deterministic hash of the placement payload
// (excluding the idempotency key) so key reuse with a different request can
// be detected.
func FingerprintPlaceOrder(input types.PlaceOrderInput) (string, error) {
	normalized := normalizedPlaceOrderInput{
		CustomerID: input.CustomerID,
		Lines:      make([]normalizedLineItem, 0, len(input.Lines)),
	}
	for _, line := range input.Lines {
		normalized.Lines = append(normalized.Lines, normalizedLineItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
