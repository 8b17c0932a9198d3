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
	ProviderName = "retail-backoffice-api"
	ConsumerName = "warehouse-portal"

	StateOrdersBaseline = "orders baseline"
	StateOrderShippable = "confirmed order 301 with stock on hand"
	StateOrderMissing   = "no order with id 999"
)

const (
	ExistingOrderID  int64 = 301
	ExistingLineID   int64 = 3011
	ExistingProduct  int64 = 77
	MissingOrderID   int64 = 999
	ExistingOrderQty int64 = 5
)

const (
	ExampleOrderNumber    = "SO-PACT-301"
	ExampleTrackingNumber = "1ZPACT42"
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

// PactFile returns the canonical pact file path for the warehouse portal consumer.
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

// ExampleShipmentPayload provides stable test data for shipment interactions.
func ExampleShipmentPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{
				"orderLineId":    ExistingLineID,
				"productId":      ExistingProduct,
				"quantityToShip": 2,
			},
		},
		"carrierInfo": map[string]any{
			"carrierType":    "ups",
			"trackingNumber": ExampleTrackingNumber,
		},
		"shippingAddress": map[string]any{
			"line1":      "1 Main St",
			"city":       "Springfield",
			"postalCode": "12345",
			"country":    "US",
		},
		"shippedBy": "warehouse-7",
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
