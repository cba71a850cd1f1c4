package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PetType groups products by the animal they are made for.
type PetType string

const (
	PetTypeDog    PetType = "DOG"
	PetTypeCat    PetType = "CAT"
	PetTypeBird   PetType = "BIRD"
	PetTypeFish   PetType = "FISH"
	PetTypeRabbit PetType = "RABBIT"
	PetTypeOther  PetType = "OTHER"
)

// LowStockThreshold is the inclusive upper bound for a product to be reported
// as running low. Out-of-stock products are not low stock.
const LowStockThreshold = 5

// Product is a read-only view of a catalog item.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Brand       string
	PetType     PetType
	Quantity    int
	Price       decimal.Decimal
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock reports whether the product is in stock but at or below the threshold.
func (p Product) LowStock() bool {
	return p.Quantity > 0 && p.Quantity <= LowStockThreshold
}
