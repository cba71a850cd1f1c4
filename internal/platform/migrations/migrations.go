package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the store schema the dashboard reads from. The store backend
// owns this schema in production; Run exists for local databases and tests.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&productRecord{},
		&orderRecord{},
		&orderItemRecord{},
	)
}

type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;size:50;uniqueIndex;not null"`
	Email     string    `gorm:"column:email;size:100;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	FullName  string    `gorm:"column:full_name"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	Role      string    `gorm:"column:role;size:20;not null"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null"`
}

func (userRecord) TableName() string { return "users" }

type productRecord struct {
	ID          int64           `gorm:"primaryKey;column:id"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Category    string          `gorm:"column:category"`
	Brand       string          `gorm:"column:brand"`
	ImageURL    string          `gorm:"column:image_url"`
	PetType     string          `gorm:"column:pet_type;size:20"`
	Active      bool            `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;type:timestamp;not null"`
	UpdatedAt   *time.Time      `gorm:"column:updated_at;type:timestamp"`
}

func (productRecord) TableName() string { return "products" }

type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id"`
	OrderNumber     string          `gorm:"column:order_number;uniqueIndex;not null"`
	UserID          int64           `gorm:"column:user_id;not null;index"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status          string          `gorm:"column:status;size:20;not null;index"`
	PaymentMethod   string          `gorm:"column:payment_method;size:30"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	Phone           string          `gorm:"column:phone"`
	Notes           string          `gorm:"column:notes"`
	CreatedAt       time.Time       `gorm:"column:created_at;type:timestamp;not null;index"`
	UpdatedAt       *time.Time      `gorm:"column:updated_at;type:timestamp"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id;not null;index"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }
