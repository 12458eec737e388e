package service

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
)

// CatalogService handles product catalog operations. Every mutation loads the
// whole catalog document, applies the change and rewrites it.
type CatalogService struct {
	productRepo   repository.ProductRepository
	maxPrice      decimal.Decimal
	lowStockAlert int
	logger        *zap.Logger

	// Serializes load-mutate-save cycles; the HTTP server is concurrent even
	// though the domain assumes a single operator.
	mu sync.Mutex
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, maxPrice decimal.Decimal, lowStockAlert int, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		maxPrice:      maxPrice,
		lowStockAlert: lowStockAlert,
		logger:        logger,
	}
}

// ProductView is a catalog entry decorated with stock signals for display.
type ProductView struct {
	Index    int             `json:"index"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category,omitempty"`
	Icon     string          `json:"icon,omitempty"`
	InStock  bool            `json:"in_stock"`
	LowStock bool            `json:"low_stock"`
}

// ListProducts returns the catalog in stored order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

// ListProductViews returns the catalog decorated with stock signals.
func (s *CatalogService) ListProductViews(ctx context.Context) ([]ProductView, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ProductView, len(products))
	for i := range products {
		p := &products[i]
		views[i] = ProductView{
			Index:    i,
			Name:     p.Name,
			Price:    p.Price,
			Stock:    p.Stock,
			Category: p.Category,
			Icon:     p.Icon,
			InStock:  p.InStock(),
			LowStock: p.LowStock(s.lowStockAlert),
		}
	}
	return views, nil
}

func (s *CatalogService) validate(product *entity.Product) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(product.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Product name is required"})
	}
	if product.Price.Sign() < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price must not be negative"})
	}
	if product.Price.GreaterThan(s.maxPrice) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price exceeds the allowed maximum of " + s.maxPrice.StringFixed(2)})
	}
	if product.Stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "Stock must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// AddProduct appends a product to the catalog.
func (s *CatalogService) AddProduct(ctx context.Context, product entity.Product) (*entity.Product, error) {
	if err := s.validate(&product); err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(product.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products = append(products, product)
	if err := s.productRepo.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	s.logger.Info("product added", zap.String("name", product.Name))
	return &product, nil
}

// UpdateProduct replaces the product at the given catalog position.
func (s *CatalogService) UpdateProduct(ctx context.Context, index int, product entity.Product) (*entity.Product, error) {
	if err := s.validate(&product); err != nil {
		return nil, err
	}
	product.Name = strings.TrimSpace(product.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(products) {
		return nil, apperror.NewNotFoundError("Product")
	}
	products[index] = product
	if err := s.productRepo.SaveAll(ctx, products); err != nil {
		return nil, err
	}
	s.logger.Info("product updated", zap.Int("index", index), zap.String("name", product.Name))
	return &product, nil
}

// DeleteProduct removes the product at the given catalog position.
func (s *CatalogService) DeleteProduct(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(products) {
		return apperror.NewNotFoundError("Product")
	}
	name := products[index].Name
	products = append(products[:index], products[index+1:]...)
	if err := s.productRepo.SaveAll(ctx, products); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int("index", index), zap.String("name", name))
	return nil
}

// StockFor returns the stock of the first product with the given name.
// Duplicate names are possible in the catalog; first match wins.
func (s *CatalogService) StockFor(ctx context.Context, name string) (int, bool, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return 0, false, err
	}
	for i := range products {
		if products[i].Name == name {
			return products[i].Stock, true, nil
		}
	}
	return 0, false, nil
}

// AdjustStockForSale decrements stock for every item of a settled sale,
// clamping at zero. A decrement that would go negative floors the stock
// instead of failing; the sale itself is never blocked here.
func (s *CatalogService) AdjustStockForSale(ctx context.Context, items []entity.SaleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		for i := range products {
			if products[i].Name == item.Name {
				products[i].Stock -= item.Quantity
				if products[i].Stock < 0 {
					products[i].Stock = 0
				}
				break
			}
		}
	}
	return s.productRepo.SaveAll(ctx, products)
}

// RestoreStock adds the quantities of a cancelled sale back to the catalog.
// The increase is unbounded; no maximum cap is enforced.
func (s *CatalogService) RestoreStock(ctx context.Context, items []entity.SaleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		for i := range products {
			if products[i].Name == item.Name {
				products[i].Stock += item.Quantity
				break
			}
		}
	}
	return s.productRepo.SaveAll(ctx, products)
}
