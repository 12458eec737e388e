package repository

import (
	"context"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
)

// CompanyRepository defines the interface for the company profile document.
type CompanyRepository interface {
	Get(ctx context.Context) (*entity.CompanyProfile, error)
	Save(ctx context.Context, profile *entity.CompanyProfile) error
}
