package domain

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/petfoodstore/admin-dashboard/internal/domains/catalog/domain"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orders "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
)

// RecentLimit is how many orders and users the dashboard lists.
const RecentLimit = 5

// Summary holds the headline metrics shown on the admin dashboard.
type Summary struct {
	TotalProducts    int
	TotalOrders      int
	TotalUsers       int
	PendingOrders    int
	TotalRevenue     decimal.Decimal
	MonthlyRevenue   decimal.Decimal
	TodayOrders      int
	LowStockProducts []catalog.Product
}

// Dashboard is an immutable reporting snapshot computed at AsOf.
type Dashboard struct {
	Summary      Summary
	RecentOrders []orders.Order
	RecentUsers  []identity.User
	AsOf         time.Time
}

// ComputeSummary derives the dashboard metrics from full collections. Calendar
// comparisons for monthly revenue and today's orders use now.Location().
func ComputeSummary(products []catalog.Product, orderList []orders.Order, users []identity.User, now time.Time) Summary {
	acc := NewAccumulator(now, RecentLimit)
	acc.Products.Add(products...)
	acc.Orders.Add(orderList...)
	acc.Users.Add(users...)
	return acc.Summary()
}

// RecentOrders returns the first n orders in source order. The backend lists
// orders newest first, so no sorting is applied here.
func RecentOrders(orderList []orders.Order, n int) []orders.Order {
	if n <= 0 {
		return []orders.Order{}
	}
	if n > len(orderList) {
		n = len(orderList)
	}
	out := make([]orders.Order, n)
	copy(out, orderList[:n])
	return out
}

// RecentUsers returns the last n users in source order, reversed so the most
// recently registered comes first.
func RecentUsers(users []identity.User, n int) []identity.User {
	if n <= 0 {
		return []identity.User{}
	}
	if n > len(users) {
		n = len(users)
	}
	out := make([]identity.User, 0, n)
	for i := len(users) - 1; i >= len(users)-n; i-- {
		out = append(out, users[i])
	}
	return out
}

// BuildDashboard computes a full dashboard from materialised collections.
func BuildDashboard(products []catalog.Product, orderList []orders.Order, users []identity.User, now time.Time) Dashboard {
	acc := NewAccumulator(now, RecentLimit)
	acc.Products.Add(products...)
	acc.Orders.Add(orderList...)
	acc.Users.Add(users...)
	return acc.Dashboard()
}

func sameMonth(t, now time.Time) bool {
	ty, tm, _ := t.In(now.Location()).Date()
	ny, nm, _ := now.Date()
	return ty == ny && tm == nm
}

func sameDay(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}
