package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one immutable ledger row. Profit and revenue are fixed at sale time
// from the product's price/cost of the moment; later price changes must never
// alter historical rows, so the values live here and not on the product.
//
// Revenue is nullable: rows written before revenue tracking existed carry
// NULL. Readers must go through RevenueOrZero, never the raw field.
type Sale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
	Profit    decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Revenue   decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	SoldAt    time.Time           `gorm:"not null;index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (Sale) TableName() string { return "sales" }

// RevenueOrZero coerces the legacy NULL revenue to zero. This is the single
// place where the historical data gap is papered over.
func (s *Sale) RevenueOrZero() decimal.Decimal {
	if !s.Revenue.Valid {
		return decimal.Zero
	}
	return s.Revenue.Decimal
}

// ProductName is safe on rows loaded without the product preloaded.
func (s *Sale) ProductName() string {
	if s.Product == nil {
		return ""
	}
	return s.Product.Name
}
