package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/enum"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
)

// CartService holds the carts currently being built. Carts are in-memory
// only: they die with the process and are cleared on checkout.
type CartService struct {
	catalog *CatalogService
	ledger  *LedgerService
	logger  *zap.Logger

	mu    sync.Mutex
	carts map[uuid.UUID]*entity.Cart
}

// NewCartService creates a new cart service.
func NewCartService(catalog *CatalogService, ledger *LedgerService, logger *zap.Logger) *CartService {
	return &CartService{
		catalog: catalog,
		ledger:  ledger,
		logger:  logger,
		carts:   make(map[uuid.UUID]*entity.Cart),
	}
}

// CartItemView is one cart line with its computed line total.
type CartItemView struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartView is the cart as presented to the operator.
type CartView struct {
	ID    uuid.UUID       `json:"id"`
	Items []CartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func cartView(id uuid.UUID, cart *entity.Cart) *CartView {
	items := cart.Items()
	views := make([]CartItemView, len(items))
	for i, item := range items {
		views[i] = CartItemView{
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal(),
		}
	}
	return &CartView{ID: id, Items: views, Total: cart.Total()}
}

// CreateCart opens a new empty cart and returns its view.
func (s *CartService) CreateCart() *CartView {
	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	cart := entity.NewCart()
	s.carts[id] = cart
	return cartView(id, cart)
}

func (s *CartService) cart(id uuid.UUID) (*entity.Cart, error) {
	cart, ok := s.carts[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Cart")
	}
	return cart, nil
}

// GetCart returns the current state of a cart.
func (s *CartService) GetCart(id uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.cart(id)
	if err != nil {
		return nil, err
	}
	return cartView(id, cart), nil
}

// AddItem puts one unit of the named product in the cart, snapshotting its
// current catalog price. Adding beyond the available stock is refused.
func (s *CartService) AddItem(ctx context.Context, id uuid.UUID, productName string) (*CartView, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	var product *entity.Product
	for i := range products {
		if products[i].Name == productName {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.cart(id)
	if err != nil {
		return nil, err
	}
	if product.Stock <= cart.Quantity(productName) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Sem estoque disponível para %s.", productName))
	}
	cart.Add(productName, product.Price)
	return cartView(id, cart), nil
}

// IncreaseItem adds one unit of a line already in the cart, respecting stock.
func (s *CartService) IncreaseItem(ctx context.Context, id uuid.UUID, productName string) (*CartView, error) {
	stock, found, err := s.catalog.StockFor(ctx, productName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.cart(id)
	if err != nil {
		return nil, err
	}
	if found && stock <= cart.Quantity(productName) {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Sem estoque disponível para %s.", productName))
	}
	if !cart.Increase(productName) {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	return cartView(id, cart), nil
}

// DecreaseItem removes one unit, dropping the line at zero.
func (s *CartService) DecreaseItem(id uuid.UUID, productName string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.cart(id)
	if err != nil {
		return nil, err
	}
	if !cart.Decrease(productName) {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	return cartView(id, cart), nil
}

// RemoveItem drops a line from the cart.
func (s *CartService) RemoveItem(id uuid.UUID, productName string) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.cart(id)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(productName) {
		return nil, apperror.NewNotFoundError("Cart item")
	}
	return cartView(id, cart), nil
}

// ClearCart empties the cart.
func (s *CartService) ClearCart(id uuid.UUID) (*CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, err := s.cart(id)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return cartView(id, cart), nil
}

// DeleteCart discards the cart entirely.
func (s *CartService) DeleteCart(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[id]; !ok {
		return apperror.NewNotFoundError("Cart")
	}
	delete(s.carts, id)
	return nil
}

// Checkout turns the cart into an order and hands it to the sale engine.
// The cart is cleared only after the sale is persisted.
func (s *CartService) Checkout(ctx context.Context, id uuid.UUID, clientName string, method enum.PaymentMethod, installments int) (*SettlementResult, error) {
	s.mu.Lock()
	cart, err := s.cart(id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if cart.Empty() {
		s.mu.Unlock()
		return nil, apperror.ErrEmptyCart
	}

	cartItems := cart.Items()
	s.mu.Unlock()

	items := make([]entity.SaleItem, len(cartItems))
	total := decimal.Zero
	for i, item := range cartItems {
		lineTotal := item.LineTotal()
		items[i] = entity.SaleItem{
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		}
		total = total.Add(lineTotal)
	}

	result, err := s.ledger.RecordSale(ctx, clientName, Order{
		Items:         items,
		Total:         total,
		PaymentMethod: method,
		Installments:  installments,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cart, ok := s.carts[id]; ok {
		cart.Clear()
	}
	s.mu.Unlock()

	s.logger.Info("cart checked out", zap.String("cart", id.String()), zap.String("client", clientName))
	return result, nil
}
