package repository

import (
	"context"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	domainRepo "github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/internal/infrastructure/storage"
)

type clientRepository struct {
	store *storage.Store
	path  string
}

// NewClientRepository creates a ledger repository backed by a JSON document.
func NewClientRepository(store *storage.Store, path string) domainRepo.ClientRepository {
	return &clientRepository{store: store, path: path}
}

func (r *clientRepository) GetAll(_ context.Context) (entity.Ledger, error) {
	return storage.Load(r.store, r.path, entity.Ledger{}), nil
}

func (r *clientRepository) SaveAll(_ context.Context, ledger entity.Ledger) error {
	return r.store.Save(r.path, ledger)
}
