package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order lifecycle state reported by the store backend. The set is
// open: values this service does not know are carried through unchanged.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var statusLabels = map[Status]string{
	StatusPending:    "Chờ xác nhận",
	StatusConfirmed:  "Đã xác nhận",
	StatusProcessing: "Đang xử lý",
	StatusShipped:    "Đang giao hàng",
	StatusDelivered:  "Đã giao hàng",
	StatusCancelled:  "Đã hủy",
}

// Label returns the display label for the status, or the raw value when unknown.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Known reports whether the status is one of the documented lifecycle states.
func (s Status) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// IsTerminal reports whether the backend accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CountsTowardRevenue is false only for cancelled orders.
func (s Status) CountsTowardRevenue() bool {
	return s != StatusCancelled
}

// PaymentMethod is how the customer pays for the order.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMoMo           PaymentMethod = "MOMO"
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
)

// Customer is the owning user reference embedded in an order.
type Customer struct {
	ID       int64
	Username string
	FullName string
}

// DisplayName prefers the full name and falls back to the username.
func (c Customer) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	return c.Username
}

// Item is a single order line.
type Item struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Order is a read-only view of a store order.
type Order struct {
	ID              int64
	OrderNumber     string
	Customer        Customer
	Items           []Item
	TotalAmount     decimal.Decimal
	Status          Status
	PaymentMethod   PaymentMethod
	ShippingAddress string
	Phone           string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PlaceOrderItem is a requested line in a new order.
type PlaceOrderItem struct {
	ProductID int64
	Quantity  int
}

// PlaceOrder is the payload for creating an order. It is forwarded as-is.
type PlaceOrder struct {
	Items           []PlaceOrderItem
	PaymentMethod   PaymentMethod
	ShippingAddress string
	Phone           string
	Notes           string
}
