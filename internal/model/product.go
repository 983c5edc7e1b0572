package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. IsDeleted implements soft delete: a product that
// already appears in the sales ledger is never removed, only hidden with its
// stock zeroed. Restocking a hidden product by name revives it.
type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"uniqueIndex;not null"`
	Image      string    `gorm:"not null;default:'default.jpg'"`
	Cost       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock      int             `gorm:"not null;default:0;check:stock >= 0"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsDeleted  bool            `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string { return "products" }
