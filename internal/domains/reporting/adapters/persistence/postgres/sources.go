package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalog "github.com/petfoodstore/admin-dashboard/internal/domains/catalog/domain"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orders "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

const defaultPageSize = 500

var (
	_ ports.ProductSource = (*Sources)(nil)
	_ ports.OrderSource   = (*Sources)(nil)
	_ ports.UserSource    = (*Sources)(nil)
)

// Sources reads dashboard inputs straight from the store database with
// keyset pagination. It never writes.
type Sources struct {
	db       *gorm.DB
	location *time.Location
	pageSize int
}

// NewSources wires read-only sources. loc is the zone the store writes its
// zone-less timestamps in.
func NewSources(db *gorm.DB, loc *time.Location, pageSize int) *Sources {
	if loc == nil {
		loc = time.UTC
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Sources{db: db, location: loc, pageSize: pageSize}
}

// Bundle exposes the adapter as all three dashboard sources.
func (s *Sources) Bundle() ports.Sources {
	return ports.Sources{Products: s, Orders: s, Users: s}
}

type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Quantity    int             `gorm:"column:quantity"`
	Category    string          `gorm:"column:category"`
	Brand       string          `gorm:"column:brand"`
	ImageURL    string          `gorm:"column:image_url"`
	PetType     string          `gorm:"column:pet_type"`
	Active      bool            `gorm:"column:active"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   *time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username"`
	Email     string    `gorm:"column:email"`
	FullName  string    `gorm:"column:full_name"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	Role      string    `gorm:"column:role"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userRecord) TableName() string { return "users" }

type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	OrderNumber     string          `gorm:"column:order_number"`
	UserID          int64           `gorm:"column:user_id"`
	User            *userRecord     `gorm:"foreignKey:UserID"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2)"`
	Status          string          `gorm:"column:status"`
	PaymentMethod   string          `gorm:"column:payment_method"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	Phone           string          `gorm:"column:phone"`
	Notes           string          `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       *time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// ListProducts pages by ascending id.
func (s *Sources) ListProducts(ctx context.Context, cursor string) (ports.Page[catalog.Product], error) {
	if err := s.ensureDB(); err != nil {
		return ports.Page[catalog.Product]{}, err
	}
	query := s.db.WithContext(ctx).Order("id ASC").Limit(s.pageSize)
	if cursor != "" {
		after, err := parseCursor(cursor)
		if err != nil {
			return ports.Page[catalog.Product]{}, err
		}
		query = query.Where("id > ?", after)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return ports.Page[catalog.Product]{}, err
	}
	items := make([]catalog.Product, 0, len(records))
	for _, r := range records {
		items = append(items, r.toDomain(s.location))
	}
	page := ports.Page[catalog.Product]{Items: items}
	if len(records) == s.pageSize {
		page.Next = strconv.FormatInt(records[len(records)-1].ID, 10)
	}
	return page, nil
}

// ListOrders pages newest first by descending id.
func (s *Sources) ListOrders(ctx context.Context, cursor string) (ports.Page[orders.Order], error) {
	if err := s.ensureDB(); err != nil {
		return ports.Page[orders.Order]{}, err
	}
	query := s.db.WithContext(ctx).Preload("User").Order("id DESC").Limit(s.pageSize)
	if cursor != "" {
		before, err := parseCursor(cursor)
		if err != nil {
			return ports.Page[orders.Order]{}, err
		}
		query = query.Where("id < ?", before)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return ports.Page[orders.Order]{}, err
	}
	items := make([]orders.Order, 0, len(records))
	for _, r := range records {
		items = append(items, r.toDomain(s.location))
	}
	page := ports.Page[orders.Order]{Items: items}
	if len(records) == s.pageSize {
		page.Next = strconv.FormatInt(records[len(records)-1].ID, 10)
	}
	return page, nil
}

// ListUsers pages by ascending id, i.e. registration order.
func (s *Sources) ListUsers(ctx context.Context, cursor string) (ports.Page[identity.User], error) {
	if err := s.ensureDB(); err != nil {
		return ports.Page[identity.User]{}, err
	}
	query := s.db.WithContext(ctx).Order("id ASC").Limit(s.pageSize)
	if cursor != "" {
		after, err := parseCursor(cursor)
		if err != nil {
			return ports.Page[identity.User]{}, err
		}
		query = query.Where("id > ?", after)
	}
	var records []userRecord
	if err := query.Find(&records).Error; err != nil {
		return ports.Page[identity.User]{}, err
	}
	items := make([]identity.User, 0, len(records))
	for _, r := range records {
		items = append(items, r.toDomain(s.location))
	}
	page := ports.Page[identity.User]{Items: items}
	if len(records) == s.pageSize {
		page.Next = strconv.FormatInt(records[len(records)-1].ID, 10)
	}
	return page, nil
}

func (s *Sources) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres dashboard sources not configured")
	}
	return nil
}

func parseCursor(cursor string) (int64, error) {
	id, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor %q: %w", cursor, err)
	}
	return id, nil
}

// wallClock reinterprets a timestamp-without-time-zone value, which the
// driver hands back labelled UTC, as wall time in loc.
func wallClock(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func optionalWallClock(t *time.Time, loc *time.Location) time.Time {
	if t == nil {
		return time.Time{}
	}
	return wallClock(*t, loc)
}

func (r productRecord) toDomain(loc *time.Location) catalog.Product {
	return catalog.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Brand:       r.Brand,
		PetType:     catalog.PetType(r.PetType),
		Quantity:    r.Quantity,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Active:      r.Active,
		CreatedAt:   wallClock(r.CreatedAt, loc),
		UpdatedAt:   optionalWallClock(r.UpdatedAt, loc),
	}
}

func (r userRecord) toDomain(loc *time.Location) identity.User {
	return identity.User{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		FullName:  r.FullName,
		Phone:     r.Phone,
		Address:   r.Address,
		Role:      identity.Role(r.Role),
		Active:    r.Active,
		CreatedAt: wallClock(r.CreatedAt, loc),
	}
}

func (r orderRecord) toDomain(loc *time.Location) orders.Order {
	out := orders.Order{
		ID:              r.ID,
		OrderNumber:     r.OrderNumber,
		Customer:        orders.Customer{ID: r.UserID},
		TotalAmount:     r.TotalAmount,
		Status:          orders.Status(r.Status),
		PaymentMethod:   orders.PaymentMethod(r.PaymentMethod),
		ShippingAddress: r.ShippingAddress,
		Phone:           r.Phone,
		Notes:           r.Notes,
		CreatedAt:       wallClock(r.CreatedAt, loc),
		UpdatedAt:       optionalWallClock(r.UpdatedAt, loc),
	}
	if r.User != nil {
		out.Customer.Username = r.User.Username
		out.Customer.FullName = r.User.FullName
	}
	return out
}
