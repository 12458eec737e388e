package entity

import (
	"github.com/shopspring/decimal"

	"github.com/cantina-ativa/canteen-api/internal/domain/enum"
)

// SaleItem is one line of a sale, carrying the unit price snapshot taken when
// the product was added to the cart.
type SaleItem struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Sale is one persisted sale inside a client's history. Items, total and date
// are immutable after checkout; paid/paid_amount/cancelled are mutated by
// settlement and cancellation.
type Sale struct {
	ID                   int                `json:"id"`
	Items                []SaleItem         `json:"items"`
	Total                decimal.Decimal    `json:"total"`
	Paid                 bool               `json:"paid"`
	PaidAmount           decimal.Decimal    `json:"paid_amount"`
	Date                 string             `json:"date"`
	Cancelled            bool               `json:"cancelled"`
	PaymentMethod        enum.PaymentMethod `json:"payment_method"`
	PaymentMethodDisplay string             `json:"payment_method_display,omitempty"`
	Installments         int                `json:"installments"`
}

// Status derives the tagged sale state from the stored fields.
func (s *Sale) Status() enum.SaleStatus {
	switch {
	case s.Cancelled:
		return enum.SaleStatusCancelled
	case s.Paid:
		return enum.SaleStatusPaid
	case s.PaidAmount.Sign() > 0:
		return enum.SaleStatusPartiallyPaid
	default:
		return enum.SaleStatusUnpaid
	}
}

// SettledAmount returns the amount actually settled. Records written by bulk
// settlements before paid_amount was tracked carry paid=true with
// paid_amount=0; those are normalized to the full total. Cancelled sales
// settle nothing.
func (s *Sale) SettledAmount() decimal.Decimal {
	if s.Cancelled {
		return decimal.Zero
	}
	if s.Paid && s.PaidAmount.IsZero() {
		return s.Total
	}
	return s.PaidAmount
}

// Remaining returns the outstanding amount on the sale, never negative.
func (s *Sale) Remaining() decimal.Decimal {
	if s.Cancelled {
		return decimal.Zero
	}
	remaining := s.Total.Sub(s.SettledAmount())
	if remaining.Sign() < 0 {
		return decimal.Zero
	}
	return remaining
}

// MethodDisplay returns the stored display label, falling back to the
// method's own label for records saved without one.
func (s *Sale) MethodDisplay() string {
	if s.PaymentMethodDisplay != "" {
		return s.PaymentMethodDisplay
	}
	if s.PaymentMethod != "" {
		return s.PaymentMethod.Display()
	}
	return "N/A"
}
