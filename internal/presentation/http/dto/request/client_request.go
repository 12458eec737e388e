package request

import "github.com/shopspring/decimal"

// AdjustCreditRequest sets a client's credit balance to a new value.
type AdjustCreditRequest struct {
	Credits decimal.Decimal `json:"credits"`
}

// CompanyRequest is the payload for updating the company profile.
type CompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	CNPJ    string `json:"cnpj"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
