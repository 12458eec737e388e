package repository

import (
	"context"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	domainRepo "github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/internal/infrastructure/storage"
)

type companyRepository struct {
	store *storage.Store
	path  string
}

// NewCompanyRepository creates a company-profile repository backed by a JSON document.
func NewCompanyRepository(store *storage.Store, path string) domainRepo.CompanyRepository {
	return &companyRepository{store: store, path: path}
}

func (r *companyRepository) Get(_ context.Context) (*entity.CompanyProfile, error) {
	return storage.Load(r.store, r.path, entity.DefaultCompanyProfile()), nil
}

func (r *companyRepository) Save(_ context.Context, profile *entity.CompanyProfile) error {
	return r.store.Save(r.path, profile)
}
