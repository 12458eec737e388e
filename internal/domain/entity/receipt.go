package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address,omitempty"`
	CNPJ        string `json:"cnpj,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Receipt is a value object representing a printable payment proof.
// It is not persisted; it is composed from ledger and company data at
// generation time.
type Receipt struct {
	Header        ReceiptHeader   `json:"header"`
	ClientName    string          `json:"client_name"`
	SaleID        int             `json:"sale_id"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   string          `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	AmountInWords string          `json:"amount_in_words"`
	Items         []ReceiptItem   `json:"items"`
	Total         decimal.Decimal `json:"total"`
	EmittedAt     time.Time       `json:"emitted_at"`
}
