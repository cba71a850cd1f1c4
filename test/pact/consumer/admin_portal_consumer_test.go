//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/petfoodstore/admin-dashboard/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

type dashboardSummary struct {
	TotalProducts       int    `json:"totalProducts"`
	TotalOrders         int    `json:"totalOrders"`
	PendingOrders       int    `json:"pendingOrders"`
	TotalRevenueDisplay string `json:"totalRevenueDisplay"`
}

type dashboardPayload struct {
	Summary      dashboardSummary `json:"summary"`
	RecentOrders []map[string]any `json:"recentOrders"`
	Timezone     string           `json:"timezone"`
}

type orderPayload struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
}

func TestAdminPortalContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", `application\/json(?:;\s?charset=utf-8)?`)
	problemContentType := matchers.S("application/problem+json")
	withStaffToken := func(b *pactconsumer.V2RequestBuilder) {
		b.Header("Authorization", matchers.Term("Bearer "+pacttest.StaffToken, `^Bearer \S+$`))
	}

	pact.AddInteraction().
		Given(pacttest.StateDashboardSeeded).
		UponReceiving("a staff request for the admin dashboard").
		WithRequest(http.MethodGet, "/api/admin/dashboard", withStaffToken).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"data": matchers.Like(map[string]any{
				"summary": matchers.Like(map[string]any{
					"totalProducts":       3,
					"totalOrders":         3,
					"totalUsers":          2,
					"pendingOrders":       1,
					"todayOrders":         2,
					"totalRevenue":        "300",
					"totalRevenueDisplay": "300 ₫",
					"monthlyRevenue":      "100",
					"lowStockProducts":    matchers.EachLike(map[string]any{"id": 1, "name": "Royal Canin Kitten", "quantity": 3}, 1),
				}),
				"recentOrders": matchers.EachLike(map[string]any{
					"orderNumber": "ORD-3",
					"status":      "PENDING",
					"statusLabel": "Chờ xác nhận",
				}, 1),
				"recentUsers": matchers.EachLike(map[string]any{"username": "lan.nguyen", "roleLabel": "Khách hàng"}, 1),
				"timezone":    matchers.Like("Asia/Ho_Chi_Minh"),
			})})
		})

	pact.AddInteraction().
		Given(pacttest.StateDashboardSeeded).
		UponReceiving("an anonymous request for the dashboard snapshot").
		WithRequest(http.MethodGet, "/api/admin/dashboard/snapshot").
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unauthorized"),
				"status": matchers.Like(http.StatusUnauthorized),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request for an order through the dashboard API").
		WithRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", pacttest.ExistingOrderID), withStaffToken).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"data": matchers.Like(map[string]any{
				"id":          pacttest.ExistingOrderID,
				"orderNumber": pacttest.ExistingOrderNumber,
				"status":      "PENDING",
				"statusLabel": "Chờ xác nhận",
			})})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order through the dashboard API").
		WithRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", pacttest.MissingOrderID), withStaffToken).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPortalClient(config, pacttest.StaffToken)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var dashboard dashboardPayload
		if err := client.get(ctx, "/api/admin/dashboard", &dashboard); err != nil {
			return fmt.Errorf("dashboard: %w", err)
		}
		if dashboard.Summary.TotalOrders == 0 || len(dashboard.RecentOrders) == 0 {
			return fmt.Errorf("expected a populated dashboard, got %+v", dashboard)
		}

		anonymous := newPortalClient(config, "")
		if err := anonymous.get(ctx, "/api/admin/dashboard/snapshot", &dashboard); err == nil {
			return fmt.Errorf("expected anonymous snapshot request to be rejected")
		} else if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusUnauthorized {
			return fmt.Errorf("expected 401, got %v", err)
		}

		var order orderPayload
		if err := client.get(ctx, fmt.Sprintf("/api/orders/%d", pacttest.ExistingOrderID), &order); err != nil {
			return fmt.Errorf("order: %w", err)
		}
		if order.ID != pacttest.ExistingOrderID {
			return fmt.Errorf("expected order %d, got %+v", pacttest.ExistingOrderID, order)
		}

		if err := client.get(ctx, fmt.Sprintf("/api/orders/%d", pacttest.MissingOrderID), &order); err == nil {
			return fmt.Errorf("expected 404 for order %d", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.status)
		}
		return nil
	})
	require.NoError(t, err)
}

// The failure case repeats the dashboard request, so it runs against its own
// mock server.
func TestAdminPortalDashboardUnavailableContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)
	problemContentType := matchers.S("application/problem+json")

	pact.AddInteraction().
		Given(pacttest.StateDashboardSourceDown).
		UponReceiving("a request for the admin dashboard while a source is down").
		WithRequest(http.MethodGet, "/api/admin/dashboard", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.Term("Bearer "+pacttest.StaffToken, `^Bearer \S+$`))
		}).
		WillRespondWith(http.StatusServiceUnavailable, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/service-unavailable"),
				"status": matchers.Like(http.StatusServiceUnavailable),
				"detail": matchers.S("failed to load dashboard"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newPortalClient(config, pacttest.StaffToken)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var dashboard dashboardPayload
		if err := client.get(ctx, "/api/admin/dashboard", &dashboard); err == nil {
			return fmt.Errorf("expected dashboard failure while a source is down")
		} else if apiErr, ok := err.(apiError); !ok || apiErr.status != http.StatusServiceUnavailable {
			return fmt.Errorf("expected 503, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

type portalClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newPortalClient(config pactconsumer.MockServerConfig, token string) *portalClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &portalClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		token:      token,
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *portalClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{status: status, title: problem.Title, detail: problem.Detail}
}
