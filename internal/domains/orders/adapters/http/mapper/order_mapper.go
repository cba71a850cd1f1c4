package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	orderdomain "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
)

// Customer is the transport shape of the order owner.
type Customer struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"fullName,omitempty"`
	DisplayName string `json:"displayName"`
}

// Item is the transport shape of an order line.
type Item struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Order is the transport shape served to the admin frontend.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Customer        *Customer       `json:"user,omitempty"`
	Items           []Item          `json:"orderItems"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	StatusLabel     string          `json:"statusLabel"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time      `json:"updatedAt,omitempty"`
}

// PlaceOrderItem is a requested line in the create payload.
type PlaceOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrder is the create payload accepted from the frontend.
type PlaceOrder struct {
	Items           []PlaceOrderItem `json:"items"`
	PaymentMethod   string           `json:"paymentMethod"`
	ShippingAddress string           `json:"shippingAddress"`
	Phone           string           `json:"phone"`
	Notes           string           `json:"notes"`
}

// ToDomainPlaceOrder converts the create payload without validating it.
func ToDomainPlaceOrder(in PlaceOrder) orderdomain.PlaceOrder {
	items := make([]orderdomain.PlaceOrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, orderdomain.PlaceOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return orderdomain.PlaceOrder{
		Items:           items,
		PaymentMethod:   orderdomain.PaymentMethod(in.PaymentMethod),
		ShippingAddress: in.ShippingAddress,
		Phone:           in.Phone,
		Notes:           in.Notes,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order orderdomain.Order) Order {
	items := make([]Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, Item{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return Order{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Customer:        fromDomainCustomer(order.Customer),
		Items:           items,
		TotalAmount:     order.TotalAmount,
		Status:          string(order.Status),
		StatusLabel:     order.Status.Label(),
		PaymentMethod:   string(order.PaymentMethod),
		ShippingAddress: order.ShippingAddress,
		Phone:           order.Phone,
		Notes:           order.Notes,
		CreatedAt:       timePtr(order.CreatedAt),
		UpdatedAt:       timePtr(order.UpdatedAt),
	}
}

// FromDomainOrders converts a list, never returning nil.
func FromDomainOrders(orders []orderdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromDomainOrder(order))
	}
	return out
}

// fromDomainCustomer returns nil when the backend sent no order owner.
func fromDomainCustomer(c orderdomain.Customer) *Customer {
	if c == (orderdomain.Customer{}) {
		return nil
	}
	return &Customer{
		ID:          c.ID,
		Username:    c.Username,
		FullName:    c.FullName,
		DisplayName: c.DisplayName(),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
