package request

import "github.com/shopspring/decimal"

// ProductRequest is the payload for creating or replacing a catalog entry.
type ProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	Icon     string          `json:"icon"`
}
