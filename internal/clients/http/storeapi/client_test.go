package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithHTTPClient(srv.Client())}, opts...)
	client, err := NewClient(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresAbsoluteURL(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
	_, err = NewClient("/api")
	require.Error(t, err)
}

func TestClientUnwrapsDataEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/all", r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `{"data":[{"id":7,"orderNumber":"ORD-7","totalAmount":150000.50,"status":"PENDING","createdAt":"2026-10-19T08:30:00"}]}`)
	}, WithServiceToken("svc-token"))

	orders, err := client.AllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(7), orders[0].ID)
	assert.True(t, decimal.RequireFromString("150000.5").Equal(orders[0].TotalAmount))
}

func TestClientAcceptsBareBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"name":"Royal Canin","quantity":3,"price":"420000","active":true}]`)
	})

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 3, products[0].Quantity)
}

func TestClientForwardsCallerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/my-orders", r.URL.Path)
		assert.Equal(t, "Bearer caller", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"data":[]}`)
	}, WithServiceToken("svc-token"))

	orders, err := client.MyOrders(WithBearerToken(context.Background(), "caller"))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestClientUpdateStatusUsesQueryAndEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/12/status", r.URL.Path)
		assert.Equal(t, "SHIPPED", r.URL.Query().Get("status"))
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		_, _ = io.WriteString(w, `{"data":{"id":12,"status":"SHIPPED","totalAmount":1}}`)
	})

	order, err := client.UpdateOrderStatus(context.Background(), 12, "SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", order.Status)
}

func TestClientCreateOrderSendsPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "MOMO", req.PaymentMethod)
		require.Len(t, req.Items, 1)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":99,"orderNumber":"ORD-99","status":"PENDING","totalAmount":10}`)
	})

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Items:         []CreateOrderItem{{ProductID: 1, Quantity: 2}},
		PaymentMethod: "MOMO",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), order.ID)
}

func TestClientStatusErrors(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = io.WriteString(w, `{"message":"nope"}`)
		})

		_, err := client.Order(context.Background(), 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, tc.sentinel)

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, KindStatus, apiErr.Kind)
		assert.Equal(t, "nope", apiErr.Message)
		assert.Equal(t, tc.status, StatusCode(err))
	}
}

func TestClientMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"not":"a list"}}`)
	})

	_, err := client.Users(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindDecode, apiErr.Kind)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClientTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(url, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = client.Products(context.Background())
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindTransport, apiErr.Kind)
	assert.Zero(t, StatusCode(err))
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)

	local, err := ParseTimestamp("2026-10-19T08:30:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 1, 30, 0, 0, time.UTC), local.UTC())

	withOffset, err := ParseTimestamp("2026-10-19T08:30:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, 8, withOffset.UTC().Hour())

	fraction, err := ParseTimestamp("2026-10-19T08:30:00.123456", loc)
	require.NoError(t, err)
	assert.Equal(t, 123456000, fraction.Nanosecond())

	empty, err := ParseTimestamp("", loc)
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseTimestamp("yesterday", loc)
	require.Error(t, err)
}

func TestClientRefusesDotSegments(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = io.WriteString(w, `{"data":[]}`)
	})

	for _, status := range []string{"..", ".", ""} {
		_, err := client.OrdersByStatus(context.Background(), status)
		require.ErrorIs(t, err, ErrInvalidPathSegment, status)
	}
	assert.False(t, called)
}

func TestClientEscapesPathSegments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/status/a%2F..%2Fall", r.URL.EscapedPath())
		_, _ = io.WriteString(w, `{"data":[]}`)
	})

	_, err := client.OrdersByStatus(context.Background(), "a/../all")
	require.NoError(t, err)
}

func TestClientWithoutServiceTokenSendsNoAuthorization(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.AllOrders(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}
