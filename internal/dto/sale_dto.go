package dto

import "github.com/shopspring/decimal"

type SellRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type SaleResponse struct {
	ID       string          `json:"id"`
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Profit   decimal.Decimal `json:"profit"`
	Revenue  decimal.Decimal `json:"revenue"`
	SoldAt   string          `json:"sold_at"`
}
