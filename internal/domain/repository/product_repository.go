package repository

import (
	"context"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog persistence. The
// catalog is a single document read and rewritten wholesale on every
// operation.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	SaveAll(ctx context.Context, products []entity.Product) error
}
