//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// The admin portal consumes this service's HTTP API.
const (
	ProviderName = "admin-dashboard-api"
	ConsumerName = "admin-portal"
)

// This service consumes the petfood store backend.
const (
	BackendProviderName = "petfood-backend"
	BackendConsumerName = "admin-dashboard"
)

const (
	StateDashboardSeeded     = "dashboard sources are seeded"
	StateDashboardSourceDown = "the product source is unavailable"
	StateOrderExists         = "order with id 301 exists"
	StateOrderMissing        = "no order with id 999"
	StateStaffCaller         = "caller is a staff member"
	StateCatalogSeeded       = "catalog and accounts exist"
)

const (
	ExistingOrderID int64 = 301
	MissingOrderID  int64 = 999

	ExistingOrderNumber = "ORD-20261019-301"
	StaffToken          = "pact-staff-token"
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

// PactFile returns the pact file written by the admin portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// BackendPactFile returns the pact file this service publishes for the backend team.
func BackendPactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), BackendConsumerName+"-"+BackendProviderName+".json")
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

// ExampleBackendOrder is the backend's order representation used by both contracts.
func ExampleBackendOrder() map[string]any {
	return map[string]any{
		"id":          ExistingOrderID,
		"orderNumber": ExistingOrderNumber,
		"user": map[string]any{
			"id":       42,
			"username": "lan.nguyen",
			"fullName": "Nguyễn Thị Lan",
		},
		"totalAmount":   450000,
		"status":        "PENDING",
		"paymentMethod": "CASH_ON_DELIVERY",
		"createdAt":     "2026-10-19T09:15:00",
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
