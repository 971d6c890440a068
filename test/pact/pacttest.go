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
	ProviderName = "inventory-api"
	ConsumerName = "storefront-portal"

	StateCatalogSeeded = "catalog and inventory seeded"
	StateOrderExists   = "order with id 301 exists"
	StateOrderMissing  = "no order with id 999"
)

const (
	SeededProductID int64 = 101
	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 999

	SeededProductName  = "Pact Widget"
	SeededProductSKU   = "PAC-0101"
	SeededProductPrice = "10.00"
	SeededStock        = 25
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

// ExampleCreateOrderPayload provides stable test data for order interactions.
func ExampleCreateOrderPayload() map[string]any {
	return map[string]any{
		"customerName":  "Pact Customer",
		"customerEmail": "pact.customer@example.com",
		"items": []map[string]any{
			{"productId": SeededProductID, "quantity": 2},
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
