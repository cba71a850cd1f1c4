package ports

import (
	"context"

	catalog "github.com/petfoodstore/admin-dashboard/internal/domains/catalog/domain"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orders "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
)

// Page is one slice of a source listing. An empty Next means the listing is
// exhausted.
type Page[T any] struct {
	Items []T
	Next  string
}

// ProductSource lists products in catalog order.
type ProductSource interface {
	ListProducts(ctx context.Context, cursor string) (Page[catalog.Product], error)
}

// OrderSource lists orders newest first.
type OrderSource interface {
	ListOrders(ctx context.Context, cursor string) (Page[orders.Order], error)
}

// UserSource lists users in registration order, oldest first.
type UserSource interface {
	ListUsers(ctx context.Context, cursor string) (Page[identity.User], error)
}

// Sources bundles the three read sides the dashboard is computed from.
type Sources struct {
	Products ProductSource
	Orders   OrderSource
	Users    UserSource
}
