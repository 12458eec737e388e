package request

// CartItemRequest names the product a cart operation targets.
type CartItemRequest struct {
	Product string `json:"product" binding:"required"`
}

// CheckoutRequest finalizes a cart as a sale.
type CheckoutRequest struct {
	Client        string `json:"client" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Installments  int    `json:"installments"`
}
