package entity

import "github.com/shopspring/decimal"

// CreditEntry is one line in a client's credit-adjustment log.
type CreditEntry struct {
	Timestamp string          `json:"timestamp"`
	Delta     decimal.Decimal `json:"delta"`
	Reason    string          `json:"reason"`
}

// Client holds a client's prepaid balance, sales history and credit log.
// The client's name is the key of the ledger document, not a field here.
type Client struct {
	Credits       decimal.Decimal `json:"credits"`
	Sales         []Sale          `json:"sales"`
	CreditHistory []CreditEntry   `json:"credit_history"`
}

// NewClient returns a client with a zero balance and empty history.
func NewClient() *Client {
	return &Client{
		Credits:       decimal.Zero,
		Sales:         []Sale{},
		CreditHistory: []CreditEntry{},
	}
}

// Owed sums the totals of unpaid, non-cancelled sales. The amount is always
// recomputed from the history, never stored.
func (c *Client) Owed() decimal.Decimal {
	owed := decimal.Zero
	for i := range c.Sales {
		sale := &c.Sales[i]
		if !sale.Paid && !sale.Cancelled {
			owed = owed.Add(sale.Total)
		}
	}
	return owed
}

// FindSale returns the sale with the given id, or nil.
func (c *Client) FindSale(id int) *Sale {
	for i := range c.Sales {
		if c.Sales[i].ID == id {
			return &c.Sales[i]
		}
	}
	return nil
}

// Ledger maps client names to their records, mirroring clients.json.
type Ledger map[string]*Client
