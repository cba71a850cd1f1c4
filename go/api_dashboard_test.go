package adminserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	catalog "github.com/petfoodstore/admin-dashboard/internal/domains/catalog/domain"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orderdomain "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
	reportingexport "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/export"
	dashboardmapper "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/http/mapper"
	reportingmemory "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/memory"
	reportingworkflows "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/workflows"
	reportingapp "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	reportingports "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
	apierrors "github.com/petfoodstore/admin-dashboard/internal/shared/errors"
)

var saigon = time.FixedZone("ICT", 7*3600)

type failingProducts struct{}

func (failingProducts) ListProducts(context.Context, string) (reportingports.Page[catalog.Product], error) {
	return reportingports.Page[catalog.Product]{}, errors.New("connection refused")
}

func seededStore(now time.Time) *reportingmemory.Store {
	store := reportingmemory.NewStore(2)
	store.AddProducts(
		catalog.Product{ID: 1, Name: "Royal Canin Kitten", Quantity: 3, Price: decimal.NewFromInt(450000)},
		catalog.Product{ID: 2, Name: "Pedigree Adult", Quantity: 0, Price: decimal.NewFromInt(320000)},
		catalog.Product{ID: 3, Name: "Whiskas Tuna", Quantity: 40, Price: decimal.NewFromInt(95000)},
	)
	store.AddOrders(
		orderdomain.Order{ID: 3, OrderNumber: "ORD-3", Status: orderdomain.StatusPending, TotalAmount: decimal.NewFromInt(100), CreatedAt: now},
		orderdomain.Order{ID: 2, OrderNumber: "ORD-2", Status: orderdomain.StatusCancelled, TotalAmount: decimal.NewFromInt(50), CreatedAt: now},
		orderdomain.Order{ID: 1, OrderNumber: "ORD-1", Status: orderdomain.StatusDelivered, TotalAmount: decimal.NewFromInt(200), CreatedAt: now.AddDate(0, -1, 0)},
	)
	store.AddUsers(identity.User{ID: 1, Username: "admin", Role: identity.RoleAdmin, CreatedAt: now.AddDate(-1, 0, 0)})
	return store
}

// backendStaffCheck admits only staffToken, the way the backend's
// staff-only listing answers.
func backendStaffCheck(ctx context.Context) error {
	if storeapi.BearerToken(ctx) == staffToken {
		return nil
	}
	return &storeapi.Error{Kind: storeapi.KindStatus, Method: http.MethodGet, Path: "/orders/all", StatusCode: http.StatusForbidden, Message: "Access Denied"}
}

func newDashboardRouter(t *testing.T, sources reportingports.Sources, now time.Time) (*gin.Engine, *reportingapp.Board) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service := reportingapp.NewService(sources, reportingapp.WithTimeout(time.Second))
	board := reportingapp.NewBoard(reportingworkflows.NewInlineDashboardWorkflows(service), saigon,
		reportingapp.WithClock(func() time.Time { return now }))
	api := NewDashboardAPI(board, StaffVerifierFunc(backendStaffCheck), dashboardmapper.NewFormatter(saigon))
	return NewRouter(ApiHandleFunctions{DashboardAPI: api}), board
}

func TestGetDashboard(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	router, board := newDashboardRouter(t, seededStore(now).Sources(), now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard dashboardmapper.Dashboard
	decodeData(t, rec, &dashboard)
	assert.Equal(t, 3, dashboard.Summary.TotalProducts)
	assert.Equal(t, 3, dashboard.Summary.TotalOrders)
	assert.Equal(t, 1, dashboard.Summary.TotalUsers)
	assert.Equal(t, 1, dashboard.Summary.PendingOrders)
	assert.Equal(t, 2, dashboard.Summary.TodayOrders)
	assert.True(t, decimal.NewFromInt(300).Equal(dashboard.Summary.TotalRevenue))
	assert.True(t, decimal.NewFromInt(100).Equal(dashboard.Summary.MonthlyRevenue))
	require.Len(t, dashboard.Summary.LowStockProducts, 1)
	assert.Equal(t, int64(1), dashboard.Summary.LowStockProducts[0].ID)
	assert.Equal(t, "ORD-3", dashboard.RecentOrders[0].OrderNumber)

	assert.Equal(t, reportingapp.StateReady, board.Current().State)
}

func TestGetDashboardFailsWhole(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	sources := seededStore(now).Sources()
	sources.Products = failingProducts{}
	router, board := newDashboardRouter(t, sources, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	problem := decodeProblem(t, rec)
	assert.Equal(t, "failed to load dashboard", problem.Detail)
	assert.NotContains(t, rec.Body.String(), "totalOrders")
	assert.Equal(t, reportingapp.StateFailed, board.Current().State)
	assert.Nil(t, board.Current().Dashboard)
}

func TestGetDashboardAfterClose(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	router, board := newDashboardRouter(t, seededStore(now).Sources(), now)
	board.Close()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetDashboardSnapshotDoesNotRefetch(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	router, _ := newDashboardRouter(t, seededStore(now).Sources(), now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard/snapshot", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var snap dashboardmapper.Snapshot
	decodeData(t, rec, &snap)
	assert.Equal(t, "empty", snap.State)
	assert.Nil(t, snap.Dashboard)

	router.ServeHTTP(httptest.NewRecorder(), staffRequest(http.MethodGet, "/api/admin/dashboard", nil))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard/snapshot", nil))
	decodeData(t, rec, &snap)
	assert.Equal(t, "ready", snap.State)
	assert.Equal(t, uint64(1), snap.Generation)
	require.NotNil(t, snap.Dashboard)
	assert.Equal(t, 3, snap.Dashboard.Summary.TotalOrders)
}

func TestExportDashboard(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	router, _ := newDashboardRouter(t, seededStore(now).Sources(), now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard/export.xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reportingexport.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=dashboard_2026-10-19.xlsx", rec.Header().Get("Content-Disposition"))

	book, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	pending, err := book.GetCellValue(book.GetSheetList()[0], "B5")
	require.NoError(t, err)
	assert.Equal(t, "1", pending)
}

func TestExportDashboardCachedRequiresReadySnapshot(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	sources := seededStore(now).Sources()
	sources.Products = failingProducts{}
	router, _ := newDashboardRouter(t, sources, now)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard/export.xlsx?cached=true", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard/export.xlsx?cached=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardRoutesRejectAnonymousCallers(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	router, board := newDashboardRouter(t, seededStore(now).Sources(), now)
	router.ServeHTTP(httptest.NewRecorder(), staffRequest(http.MethodGet, "/api/admin/dashboard", nil))
	require.Equal(t, reportingapp.StateReady, board.Current().State)

	for _, path := range []string{
		"/api/admin/dashboard",
		"/api/admin/dashboard/snapshot",
		"/api/admin/dashboard/export.xlsx",
		"/api/admin/dashboard/export.xlsx?cached=true",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, apierrors.TypeUnauthorized, decodeProblem(t, rec).Type)
		assert.NotContains(t, rec.Body.String(), "totalOrders", path)
	}
	assert.Equal(t, uint64(1), board.Current().Generation)
}

func TestDashboardRoutesRejectNonStaffCallers(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	store := seededStore(now)
	store.AddUsers(identity.User{ID: 9, Username: "boss", Email: "boss@secret.vn", Role: identity.RoleAdmin, CreatedAt: now})
	router, board := newDashboardRouter(t, store.Sources(), now)
	router.ServeHTTP(httptest.NewRecorder(), staffRequest(http.MethodGet, "/api/admin/dashboard", nil))

	for _, path := range []string{
		"/api/admin/dashboard",
		"/api/admin/dashboard/snapshot",
		"/api/admin/dashboard/export.xlsx?cached=true",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer customer-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "boss@secret.vn", path)
	}
	assert.Equal(t, uint64(1), board.Current().Generation)
}

func TestDashboardWithoutStaffVerifierFailsClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, saigon)
	service := reportingapp.NewService(seededStore(now).Sources())
	board := reportingapp.NewBoard(reportingworkflows.NewInlineDashboardWorkflows(service), saigon)
	t.Cleanup(board.Close)
	router := NewRouter(ApiHandleFunctions{DashboardAPI: NewDashboardAPI(board, nil, dashboardmapper.NewFormatter(saigon))})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, staffRequest(http.MethodGet, "/api/admin/dashboard/snapshot", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGatewayStaffVerifierCallsAsCaller(t *testing.T) {
	gateway := sampleGateway()
	verifier := GatewayStaffVerifier(gateway)

	require.NoError(t, verifier.VerifyStaff(storeapi.WithBearerToken(context.Background(), staffToken)))
	assert.Equal(t, staffToken, gateway.lastToken)

	gateway.err = &storeapi.Error{Kind: storeapi.KindStatus, StatusCode: http.StatusForbidden}
	require.ErrorIs(t, verifier.VerifyStaff(context.Background()), storeapi.ErrForbidden)
}
