package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdomain "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
)

type stubGateway struct {
	err error
}

func (s stubGateway) CreateOrder(context.Context, orderdomain.PlaceOrder) (*orderdomain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &orderdomain.Order{ID: 1, OrderNumber: "ORD-1"}, nil
}

func (s stubGateway) GetMyOrders(context.Context) ([]orderdomain.Order, error) {
	return []orderdomain.Order{{ID: 1}}, s.err
}

func (s stubGateway) GetOrderDetails(_ context.Context, id int64) (*orderdomain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &orderdomain.Order{ID: id}, nil
}

func (s stubGateway) GetAllOrders(context.Context) ([]orderdomain.Order, error) {
	return nil, s.err
}

func (s stubGateway) UpdateOrderStatus(_ context.Context, id int64, status orderdomain.Status) (*orderdomain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &orderdomain.Order{ID: id, Status: status}, nil
}

func (s stubGateway) GetOrdersByStatus(context.Context, orderdomain.Status) ([]orderdomain.Order, error) {
	return nil, s.err
}

func (s stubGateway) CancelOrder(context.Context, int64) error {
	return s.err
}

func TestGatewayDecoratorPassesThroughResults(t *testing.T) {
	var buf bytes.Buffer
	gw := New(stubGateway{}, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	order, err := gw.UpdateOrderStatus(context.Background(), 4, orderdomain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, orderdomain.StatusConfirmed, order.Status)
	assert.Contains(t, buf.String(), "order status updated")
}

func TestGatewayDecoratorReturnsSameError(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer
	gw := New(stubGateway{err: boom}, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))), WithTracer(nil))

	_, err := gw.GetOrderDetails(context.Background(), 9)
	assert.Same(t, boom, err)
	assert.Contains(t, buf.String(), "failed to load order")
	assert.ErrorIs(t, gw.CancelOrder(context.Background(), 9), boom)
}
