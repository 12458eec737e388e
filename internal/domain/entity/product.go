package entity

import "github.com/shopspring/decimal"

// Product represents one catalog entry. The catalog is an ordered list and
// positions are addressable by index; names are not enforced unique.
type Product struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category,omitempty"`
	Icon     string          `json:"icon,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// LowStock reports whether the remaining stock is at or below the alert
// threshold (but not exhausted).
func (p *Product) LowStock(threshold int) bool {
	return p.Stock > 0 && p.Stock <= threshold
}
