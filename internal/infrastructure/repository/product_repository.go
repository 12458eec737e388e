package repository

import (
	"context"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	domainRepo "github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/internal/infrastructure/storage"
)

type productRepository struct {
	store *storage.Store
	path  string
}

// NewProductRepository creates a catalog repository backed by a JSON document.
func NewProductRepository(store *storage.Store, path string) domainRepo.ProductRepository {
	return &productRepository{store: store, path: path}
}

func (r *productRepository) List(_ context.Context) ([]entity.Product, error) {
	return storage.Load(r.store, r.path, []entity.Product{}), nil
}

func (r *productRepository) SaveAll(_ context.Context, products []entity.Product) error {
	return r.store.Save(r.path, products)
}
