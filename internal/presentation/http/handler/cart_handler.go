package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cantina-ativa/canteen-api/internal/application/service"
	"github.com/cantina-ativa/canteen-api/internal/domain/enum"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/request"
	"github.com/cantina-ativa/canteen-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func cartID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart id")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles opening a new empty cart
func (h *CartHandler) Create(c *gin.Context) {
	response.Created(c, "Cart created successfully", h.cartService.CreateCart())
}

// Get handles fetching a cart's current contents
func (h *CartHandler) Get(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	view, err := h.cartService.GetCart(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", view)
}

// AddItem handles adding one unit of a product to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req request.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), id, req.Product)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added successfully", view)
}

// IncreaseItem handles incrementing an item's quantity
func (h *CartHandler) IncreaseItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req request.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.IncreaseItem(c.Request.Context(), id, req.Product)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item quantity increased", view)
}

// DecreaseItem handles decrementing an item's quantity
func (h *CartHandler) DecreaseItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req request.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.DecreaseItem(id, req.Product)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item quantity decreased", view)
}

// RemoveItem handles removing a product line from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	view, err := h.cartService.RemoveItem(id, c.Param("product"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed successfully", view)
}

// Clear handles emptying the cart
func (h *CartHandler) Clear(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	view, err := h.cartService.ClearCart(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared successfully", view)
}

// Delete handles discarding the cart entirely
func (h *CartHandler) Delete(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	if err := h.cartService.DeleteCart(id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart deleted successfully", nil)
}

// Checkout handles turning the cart into a recorded sale
func (h *CartHandler) Checkout(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.cartService.Checkout(c.Request.Context(), id, req.Client, enum.PaymentMethod(req.PaymentMethod), req.Installments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale recorded successfully", result)
}
