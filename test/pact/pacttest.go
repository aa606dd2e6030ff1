//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "order-api"
	ConsumerName = "storefront-web"

	StateCatalogSeeded   = "catalog seeded with widget and gadget"
	StateOrderExists     = "order ord-301 exists"
	StateOrderMissing    = "no order with id ord-404"
	StateGadgetShortage  = "gadget has only 1 unit in stock"
	StateCustomersExists = "customer cus-101 exists"
)

const (
	ExistingCustomerID = "cus-101"
	ExistingOrderID    = "ord-301"
	MissingOrderID     = "ord-404"

	WidgetProductID = "prod-widget"
	GadgetProductID = "prod-gadget"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePlaceOrderPayload provides stable test data for order interactions.
func ExamplePlaceOrderPayload() map[string]any {
	return map[string]any{
		"customerId": ExistingCustomerID,
		"products": []map[string]any{
			{"id": WidgetProductID, "quantity": 4},
			{"id": GadgetProductID, "quantity": 1},
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
