package rest

import (
	"fmt"
	"time"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	"github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
)

// ToDomainOrder converts the backend representation, reading zone-less
// timestamps in loc.
func ToDomainOrder(in storeapi.Order, loc *time.Location) (domain.Order, error) {
	createdAt, err := storeapi.ParseTimestamp(in.CreatedAt, loc)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d createdAt: %w", in.ID, err)
	}
	updatedAt, err := storeapi.ParseTimestamp(in.UpdatedAt, loc)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d updatedAt: %w", in.ID, err)
	}
	out := domain.Order{
		ID:              in.ID,
		OrderNumber:     in.OrderNumber,
		TotalAmount:     in.TotalAmount,
		Status:          domain.Status(in.Status),
		PaymentMethod:   domain.PaymentMethod(in.PaymentMethod),
		ShippingAddress: in.ShippingAddress,
		Phone:           in.Phone,
		Notes:           in.Notes,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
	if in.User != nil {
		out.Customer = domain.Customer{ID: in.User.ID, Username: in.User.Username, FullName: in.User.FullName}
	}
	if len(in.OrderItems) > 0 {
		out.Items = make([]domain.Item, 0, len(in.OrderItems))
		for _, item := range in.OrderItems {
			line := domain.Item{ID: item.ID, Quantity: item.Quantity, Price: item.Price}
			if item.Product != nil {
				line.ProductID = item.Product.ID
				line.ProductName = item.Product.Name
			}
			out.Items = append(out.Items, line)
		}
	}
	return out, nil
}

// ToDomainOrders converts a list, failing on the first unreadable entry.
func ToDomainOrders(in []storeapi.Order, loc *time.Location) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(in))
	for _, item := range in {
		order, err := ToDomainOrder(item, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, nil
}

// FromPlaceOrder builds the creation payload.
func FromPlaceOrder(in domain.PlaceOrder) storeapi.CreateOrderRequest {
	items := make([]storeapi.CreateOrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, storeapi.CreateOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return storeapi.CreateOrderRequest{
		Items:           items,
		PaymentMethod:   string(in.PaymentMethod),
		ShippingAddress: in.ShippingAddress,
		Phone:           in.Phone,
		Notes:           in.Notes,
	}
}
