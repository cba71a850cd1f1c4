package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	catalog "github.com/petfoodstore/admin-dashboard/internal/domains/catalog/domain"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orders "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
	orderports "github.com/petfoodstore/admin-dashboard/internal/domains/orders/ports"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

// Client is the catalog and account subset of the store API.
type Client interface {
	Products(ctx context.Context) ([]storeapi.Product, error)
	Users(ctx context.Context) ([]storeapi.User, error)
}

// Sources reads the dashboard inputs from the store REST API. The backend has
// no paging on these endpoints, so each listing is served as a single page.
type Sources struct {
	client   Client
	orders   orderports.Gateway
	location *time.Location
}

var (
	_ ports.ProductSource = (*Sources)(nil)
	_ ports.OrderSource   = (*Sources)(nil)
	_ ports.UserSource    = (*Sources)(nil)
)

// NewSources builds REST-backed sources. Orders are read through the order
// gateway's staff-only listing.
func NewSources(client Client, gateway orderports.Gateway, loc *time.Location) *Sources {
	if loc == nil {
		loc = time.UTC
	}
	return &Sources{client: client, orders: gateway, location: loc}
}

// Bundle exposes the adapter as all three dashboard sources.
func (s *Sources) Bundle() ports.Sources {
	return ports.Sources{Products: s, Orders: s, Users: s}
}

func (s *Sources) ListProducts(ctx context.Context, _ string) (ports.Page[catalog.Product], error) {
	list, err := s.client.Products(ctx)
	if err != nil {
		return ports.Page[catalog.Product]{}, err
	}
	out := make([]catalog.Product, 0, len(list))
	for _, item := range list {
		product, err := toProduct(item, s.location)
		if err != nil {
			return ports.Page[catalog.Product]{}, err
		}
		out = append(out, product)
	}
	return ports.Page[catalog.Product]{Items: out}, nil
}

func (s *Sources) ListOrders(ctx context.Context, _ string) (ports.Page[orders.Order], error) {
	list, err := s.orders.GetAllOrders(ctx)
	if err != nil {
		return ports.Page[orders.Order]{}, err
	}
	return ports.Page[orders.Order]{Items: list}, nil
}

func (s *Sources) ListUsers(ctx context.Context, _ string) (ports.Page[identity.User], error) {
	list, err := s.client.Users(ctx)
	if err != nil {
		return ports.Page[identity.User]{}, err
	}
	out := make([]identity.User, 0, len(list))
	for _, item := range list {
		user, err := toUser(item, s.location)
		if err != nil {
			return ports.Page[identity.User]{}, err
		}
		out = append(out, user)
	}
	return ports.Page[identity.User]{Items: out}, nil
}

func toProduct(in storeapi.Product, loc *time.Location) (catalog.Product, error) {
	createdAt, err := storeapi.ParseTimestamp(in.CreatedAt, loc)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product %d createdAt: %w", in.ID, err)
	}
	updatedAt, err := storeapi.ParseTimestamp(in.UpdatedAt, loc)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product %d updatedAt: %w", in.ID, err)
	}
	return catalog.Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Brand:       in.Brand,
		PetType:     catalog.PetType(in.PetType),
		Quantity:    in.Quantity,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Active:      in.Active,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func toUser(in storeapi.User, loc *time.Location) (identity.User, error) {
	createdAt, err := storeapi.ParseTimestamp(in.CreatedAt, loc)
	if err != nil {
		return identity.User{}, fmt.Errorf("user %d createdAt: %w", in.ID, err)
	}
	return identity.User{
		ID:        in.ID,
		Username:  in.Username,
		Email:     in.Email,
		FullName:  in.FullName,
		Phone:     in.Phone,
		Address:   in.Address,
		Role:      identity.Role(in.Role),
		Active:    in.Active,
		CreatedAt: createdAt,
	}, nil
}
