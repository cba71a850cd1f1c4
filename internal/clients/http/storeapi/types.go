package storeapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UserRef is the owning user embedded in an order.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
}

// ProductRef is the product embedded in an order item.
type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderItem is a line of an order as returned by the backend.
type OrderItem struct {
	ID       int64           `json:"id"`
	Product  *ProductRef     `json:"product,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Order is the backend order representation.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	User            *UserRef        `json:"user,omitempty"`
	OrderItems      []OrderItem     `json:"orderItems,omitempty"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// CreateOrderItem is a requested order line.
type CreateOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	PaymentMethod   string            `json:"paymentMethod,omitempty"`
	ShippingAddress string            `json:"shippingAddress,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	Notes           string            `json:"notes,omitempty"`
}

// Product is the backend product representation.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	PetType     string          `json:"petType,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// User is the backend user representation.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"fullName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// MessageResponse is returned by endpoints that carry no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses backend timestamps. Values with an offset are parsed
// as RFC 3339; zone-less values are interpreted in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
