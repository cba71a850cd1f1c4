package domain

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/petfoodstore/admin-dashboard/internal/domains/catalog/domain"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orders "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
)

// Accumulator folds paged source data into a Dashboard. Each tally is owned by
// exactly one producer, so the three sources can be drained concurrently and
// combined once all of them finish.
type Accumulator struct {
	Products ProductTally
	Orders   OrderTally
	Users    UserTally
	now      time.Time
}

// NewAccumulator starts an empty accumulator for the reporting instant now.
func NewAccumulator(now time.Time, recentLimit int) *Accumulator {
	return &Accumulator{
		Products: ProductTally{},
		Orders:   OrderTally{now: now, limit: recentLimit, revenue: decimal.Zero, monthly: decimal.Zero},
		Users:    UserTally{limit: recentLimit},
		now:      now,
	}
}

// Summary returns the metrics accumulated so far.
func (a *Accumulator) Summary() Summary {
	lowStock := make([]catalog.Product, len(a.Products.lowStock))
	copy(lowStock, a.Products.lowStock)
	return Summary{
		TotalProducts:    a.Products.total,
		TotalOrders:      a.Orders.total,
		TotalUsers:       a.Users.total,
		PendingOrders:    a.Orders.pending,
		TotalRevenue:     a.Orders.revenue,
		MonthlyRevenue:   a.Orders.monthly,
		TodayOrders:      a.Orders.today,
		LowStockProducts: lowStock,
	}
}

// Dashboard returns the summary together with the recent slices.
func (a *Accumulator) Dashboard() Dashboard {
	return Dashboard{
		Summary:      a.Summary(),
		RecentOrders: a.Orders.Recent(),
		RecentUsers:  a.Users.Recent(),
		AsOf:         a.now,
	}
}

// ProductTally counts products and collects low-stock ones in input order.
type ProductTally struct {
	total    int
	lowStock []catalog.Product
}

// Add folds the next page of products into the tally.
func (t *ProductTally) Add(items ...catalog.Product) {
	for _, p := range items {
		t.total++
		if p.LowStock() {
			t.lowStock = append(t.lowStock, p)
		}
	}
}

// OrderTally sums revenue, counts pending and same-day orders, and keeps the
// first orders seen.
type OrderTally struct {
	now     time.Time
	limit   int
	total   int
	pending int
	today   int
	revenue decimal.Decimal
	monthly decimal.Decimal
	recent  []orders.Order
}

// Add folds the next page of orders, in source order, into the tally.
func (t *OrderTally) Add(items ...orders.Order) {
	for _, o := range items {
		t.total++
		if o.Status == orders.StatusPending {
			t.pending++
		}
		if o.Status.CountsTowardRevenue() {
			t.revenue = t.revenue.Add(o.TotalAmount)
			if sameMonth(o.CreatedAt, t.now) {
				t.monthly = t.monthly.Add(o.TotalAmount)
			}
		}
		if sameDay(o.CreatedAt, t.now) {
			t.today++
		}
		if len(t.recent) < t.limit {
			t.recent = append(t.recent, o)
		}
	}
}

// Recent returns a copy of the first orders seen, in source order.
func (t *OrderTally) Recent() []orders.Order {
	out := make([]orders.Order, len(t.recent))
	copy(out, t.recent)
	return out
}

// UserTally counts users and keeps a window over the last ones seen.
type UserTally struct {
	limit  int
	total  int
	window []identity.User
}

// Add folds the next page of users into the tally, sliding the recent window.
func (t *UserTally) Add(items ...identity.User) {
	for _, u := range items {
		t.total++
		if t.limit <= 0 {
			continue
		}
		t.window = append(t.window, u)
		if len(t.window) > t.limit {
			t.window = t.window[1:]
		}
	}
}

// Recent returns the window newest first.
func (t *UserTally) Recent() []identity.User {
	out := make([]identity.User, 0, len(t.window))
	for i := len(t.window) - 1; i >= 0; i-- {
		out = append(out, t.window[i])
	}
	return out
}
