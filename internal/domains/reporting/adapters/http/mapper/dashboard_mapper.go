package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	reportingapp "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
)

// LowStockProduct is a product row in the low-stock table.
type LowStockProduct struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	PetType      string          `json:"petType,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	PriceDisplay string          `json:"priceDisplay"`
}

// RecentOrder is a row in the recent-orders table.
type RecentOrder struct {
	ID                 int64           `json:"id"`
	OrderNumber        string          `json:"orderNumber"`
	Customer           string          `json:"customer"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	TotalAmountDisplay string          `json:"totalAmountDisplay"`
	Status             string          `json:"status"`
	StatusLabel        string          `json:"statusLabel"`
	CreatedAt          *time.Time      `json:"createdAt,omitempty"`
	CreatedAtDisplay   string          `json:"createdAtDisplay,omitempty"`
}

// RecentUser is a row in the recent-users table.
type RecentUser struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	FullName         string     `json:"fullName,omitempty"`
	DisplayName      string     `json:"displayName"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	RoleLabel        string     `json:"roleLabel"`
	Active           bool       `json:"active"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
	CreatedAtDisplay string     `json:"createdAtDisplay,omitempty"`
}

// Summary is the metric block.
type Summary struct {
	TotalProducts         int               `json:"totalProducts"`
	TotalOrders           int               `json:"totalOrders"`
	TotalUsers            int               `json:"totalUsers"`
	PendingOrders         int               `json:"pendingOrders"`
	TodayOrders           int               `json:"todayOrders"`
	TotalRevenue          decimal.Decimal   `json:"totalRevenue"`
	TotalRevenueDisplay   string            `json:"totalRevenueDisplay"`
	MonthlyRevenue        decimal.Decimal   `json:"monthlyRevenue"`
	MonthlyRevenueDisplay string            `json:"monthlyRevenueDisplay"`
	LowStockProducts      []LowStockProduct `json:"lowStockProducts"`
}

// Dashboard is the JSON document served to the admin frontend.
type Dashboard struct {
	Summary      Summary       `json:"summary"`
	RecentOrders []RecentOrder `json:"recentOrders"`
	RecentUsers  []RecentUser  `json:"recentUsers"`
	AsOf         time.Time     `json:"asOf"`
	AsOfDisplay  string        `json:"asOfDisplay"`
	Timezone     string        `json:"timezone"`
}

// Snapshot reports the board state without refetching.
type Snapshot struct {
	State       string     `json:"state"`
	Generation  uint64     `json:"generation"`
	RefreshedAt *time.Time `json:"refreshedAt,omitempty"`
	Dashboard   *Dashboard `json:"dashboard,omitempty"`
}

// FromDomainDashboard converts a dashboard for transport.
func (f *Formatter) FromDomainDashboard(d reportingdomain.Dashboard) Dashboard {
	s := d.Summary
	lowStock := make([]LowStockProduct, 0, len(s.LowStockProducts))
	for _, p := range s.LowStockProducts {
		lowStock = append(lowStock, LowStockProduct{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			Brand:        p.Brand,
			PetType:      string(p.PetType),
			Quantity:     p.Quantity,
			Price:        p.Price,
			PriceDisplay: f.Currency(p.Price),
		})
	}
	recentOrders := make([]RecentOrder, 0, len(d.RecentOrders))
	for _, o := range d.RecentOrders {
		recentOrders = append(recentOrders, RecentOrder{
			ID:                 o.ID,
			OrderNumber:        o.OrderNumber,
			Customer:           o.Customer.DisplayName(),
			TotalAmount:        o.TotalAmount,
			TotalAmountDisplay: f.Currency(o.TotalAmount),
			Status:             string(o.Status),
			StatusLabel:        o.Status.Label(),
			CreatedAt:          timePtr(o.CreatedAt),
			CreatedAtDisplay:   f.Date(o.CreatedAt),
		})
	}
	recentUsers := make([]RecentUser, 0, len(d.RecentUsers))
	for _, u := range d.RecentUsers {
		recentUsers = append(recentUsers, RecentUser{
			ID:               u.ID,
			Username:         u.Username,
			FullName:         u.FullName,
			DisplayName:      u.DisplayName(),
			Email:            u.Email,
			Role:             string(u.Role),
			RoleLabel:        u.Role.Label(),
			Active:           u.Active,
			CreatedAt:        timePtr(u.CreatedAt),
			CreatedAtDisplay: f.Date(u.CreatedAt),
		})
	}
	return Dashboard{
		Summary: Summary{
			TotalProducts:         s.TotalProducts,
			TotalOrders:           s.TotalOrders,
			TotalUsers:            s.TotalUsers,
			PendingOrders:         s.PendingOrders,
			TodayOrders:           s.TodayOrders,
			TotalRevenue:          s.TotalRevenue,
			TotalRevenueDisplay:   f.Currency(s.TotalRevenue),
			MonthlyRevenue:        s.MonthlyRevenue,
			MonthlyRevenueDisplay: f.Currency(s.MonthlyRevenue),
			LowStockProducts:      lowStock,
		},
		RecentOrders: recentOrders,
		RecentUsers:  recentUsers,
		AsOf:         d.AsOf,
		AsOfDisplay:  f.DateTime(d.AsOf),
		Timezone:     f.location.String(),
	}
}

// FromSnapshot converts a board snapshot for transport.
func (f *Formatter) FromSnapshot(s reportingapp.Snapshot) Snapshot {
	out := Snapshot{
		State:       string(s.State),
		Generation:  s.Generation,
		RefreshedAt: timePtr(s.RefreshedAt),
	}
	if s.Dashboard != nil {
		d := f.FromDomainDashboard(*s.Dashboard)
		out.Dashboard = &d
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
