package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	"github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
	"github.com/petfoodstore/admin-dashboard/internal/domains/orders/ports"
)

// Client is the subset of the store API used by the gateway.
type Client interface {
	CreateOrder(ctx context.Context, req storeapi.CreateOrderRequest) (*storeapi.Order, error)
	MyOrders(ctx context.Context) ([]storeapi.Order, error)
	Order(ctx context.Context, id int64) (*storeapi.Order, error)
	AllOrders(ctx context.Context) ([]storeapi.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*storeapi.Order, error)
	OrdersByStatus(ctx context.Context, status string) ([]storeapi.Order, error)
	CancelOrder(ctx context.Context, id int64) (*storeapi.MessageResponse, error)
}

// Gateway implements ports.Gateway over the store REST API.
type Gateway struct {
	client   Client
	location *time.Location
}

// NewGateway builds a gateway. loc is the backend's wall-clock zone, used for
// timestamps that carry no offset.
func NewGateway(client Client, loc *time.Location) *Gateway {
	if loc == nil {
		loc = time.UTC
	}
	return &Gateway{client: client, location: loc}
}

func (g *Gateway) CreateOrder(ctx context.Context, order domain.PlaceOrder) (*domain.Order, error) {
	created, err := g.client.CreateOrder(ctx, FromPlaceOrder(order))
	if err != nil {
		return nil, err
	}
	return g.one(created)
}

func (g *Gateway) GetMyOrders(ctx context.Context) ([]domain.Order, error) {
	list, err := g.client.MyOrders(ctx)
	if err != nil {
		return nil, err
	}
	return g.many(list)
}

func (g *Gateway) GetOrderDetails(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := g.client.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.one(order)
}

func (g *Gateway) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	list, err := g.client.AllOrders(ctx)
	if err != nil {
		return nil, err
	}
	return g.many(list)
}

func (g *Gateway) UpdateOrderStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	order, err := g.client.UpdateOrderStatus(ctx, id, string(status))
	if err != nil {
		return nil, err
	}
	return g.one(order)
}

func (g *Gateway) GetOrdersByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error) {
	list, err := g.client.OrdersByStatus(ctx, string(status))
	if err != nil {
		return nil, err
	}
	return g.many(list)
}

func (g *Gateway) CancelOrder(ctx context.Context, id int64) error {
	_, err := g.client.CancelOrder(ctx, id)
	return err
}

func (g *Gateway) one(in *storeapi.Order) (*domain.Order, error) {
	if in == nil {
		return nil, ports.ErrMalformedOrder
	}
	order, err := ToDomainOrder(*in, g.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrMalformedOrder, err)
	}
	return &order, nil
}

func (g *Gateway) many(in []storeapi.Order) ([]domain.Order, error) {
	list, err := ToDomainOrders(in, g.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrMalformedOrder, err)
	}
	return list, nil
}

var _ ports.Gateway = (*Gateway)(nil)
