package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orderrest "github.com/petfoodstore/admin-dashboard/internal/domains/orders/adapters/rest"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

func backend(t *testing.T, failProducts bool) *storeapi.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		if failProducts {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `{"data":[{"id":1,"name":"Ganador","quantity":2,"price":250000,"petType":"DOG","createdAt":"2026-01-02T10:00:00"}]}`)
	})
	mux.HandleFunc("/api/orders/all", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":9,"orderNumber":"ORD-9","status":"PENDING","totalAmount":250000,"createdAt":"2026-10-19T08:00:00","user":{"id":2,"username":"minh"}}]}`)
	})
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"id":1,"username":"admin","email":"a@x.vn","role":"ADMIN","active":true},{"id":2,"username":"minh","email":"m@x.vn","role":"CUSTOMER","active":true}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := storeapi.NewClient(srv.URL+"/api", storeapi.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return client
}

func TestSourcesFeedDashboard(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	client := backend(t, false)
	sources := NewSources(client, orderrest.NewGateway(client, loc), loc)
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, loc)

	dashboard, err := application.NewService(sources.Bundle()).BuildDashboard(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Summary.TotalProducts)
	assert.Equal(t, 1, dashboard.Summary.TodayOrders)
	assert.Equal(t, 2, dashboard.Summary.TotalUsers)
	require.Len(t, dashboard.RecentUsers, 2)
	assert.Equal(t, identity.RoleCustomer, dashboard.RecentUsers[0].Role)
	assert.Equal(t, "minh", dashboard.RecentOrders[0].Customer.DisplayName())
}

func TestSourcesCollapseUpstreamFailure(t *testing.T) {
	client := backend(t, true)
	sources := NewSources(client, orderrest.NewGateway(client, time.UTC), time.UTC)

	dashboard, err := application.NewService(sources.Bundle()).BuildDashboard(context.Background(), time.Now())
	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, ports.ErrDashboardUnavailable)
}
