package ports

import (
	"context"
	"errors"

	"github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
)

// ErrMalformedOrder signals the backend returned an order this service cannot read.
var ErrMalformedOrder = errors.New("malformed order representation")

// Gateway maps order use cases 1:1 onto the store backend. Implementations do
// not validate, retry or cache; backend failures propagate unchanged. The
// caller identity travels in ctx.
type Gateway interface {
	CreateOrder(ctx context.Context, order domain.PlaceOrder) (*domain.Order, error)
	GetMyOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderDetails(ctx context.Context, id int64) (*domain.Order, error)
	GetAllOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)
	GetOrdersByStatus(ctx context.Context, status domain.Status) ([]domain.Order, error)
	CancelOrder(ctx context.Context, id int64) error
}
