package entity

import "github.com/shopspring/decimal"

// CartItem is one cart line. Price is a snapshot copied from the catalog when
// the product was first added; later catalog edits do not touch open carts.
type CartItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns price times quantity.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the transient sale being built. It is never persisted; it lives in
// memory until checkout or an explicit clear. Items keep insertion order.
type Cart struct {
	items []CartItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{items: []CartItem{}}
}

func (c *Cart) find(name string) *CartItem {
	for i := range c.items {
		if c.items[i].Name == name {
			return &c.items[i]
		}
	}
	return nil
}

// Add puts one unit of the product in the cart, snapshotting the price on the
// first add. Returns the resulting quantity of that product.
func (c *Cart) Add(name string, price decimal.Decimal) int {
	if item := c.find(name); item != nil {
		item.Quantity++
		return item.Quantity
	}
	c.items = append(c.items, CartItem{Name: name, Price: price, Quantity: 1})
	return 1
}

// Quantity returns how many units of the product are in the cart.
func (c *Cart) Quantity(name string) int {
	if item := c.find(name); item != nil {
		return item.Quantity
	}
	return 0
}

// Increase adds one unit of an item already in the cart.
func (c *Cart) Increase(name string) bool {
	item := c.find(name)
	if item == nil {
		return false
	}
	item.Quantity++
	return true
}

// Decrease removes one unit, dropping the line when it reaches zero.
func (c *Cart) Decrease(name string) bool {
	item := c.find(name)
	if item == nil {
		return false
	}
	item.Quantity--
	if item.Quantity <= 0 {
		c.Remove(name)
	}
	return true
}

// Remove drops the product's line entirely.
func (c *Cart) Remove(name string) bool {
	for i := range c.items {
		if c.items[i].Name == name {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = c.items[:0]
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total sums every line total.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.items {
		total = total.Add(c.items[i].LineTotal())
	}
	return total
}
