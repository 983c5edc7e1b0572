package dto

import (
	"github.com/shopspring/decimal"
)

// AddProductRequest covers both flows of the add endpoint: creating a brand
// new product (cost and price mandatory) and restocking an existing one by
// name (all fields but Name and Stock optional; incoming stock accumulates).
type AddProductRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=100"`
	Cost       *decimal.Decimal `json:"cost" validate:"omitempty,min=0"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,min=0"`
	Stock      int              `json:"stock" validate:"min=0"`
	CategoryID *string          `json:"category_id" validate:"omitempty,uuid"`
	Image      *string          `json:"image"`
}

type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	Cost       decimal.Decimal `json:"cost"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	CategoryID string          `json:"category_id"`
	IsDeleted  bool            `json:"is_deleted"`
	// Revived is set when a restock brought a soft-deleted product back.
	Revived bool `json:"revived,omitempty"`
}

// Delete outcomes: a product with ledger history is only hidden.
const (
	DeleteOutcomeHard = "hard_deleted"
	DeleteOutcomeSoft = "soft_deleted"
)

type DeleteProductResponse struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
}
