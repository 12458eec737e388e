package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
	"github.com/cantina-ativa/canteen-api/internal/domain/repository"
	"github.com/cantina-ativa/canteen-api/pkg/apperror"
)

// CompanyService manages the business profile printed on receipts.
type CompanyService struct {
	companyRepo repository.CompanyRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo repository.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, logger: logger}
}

// GetProfile returns the stored profile, or the defaults when none exists.
func (s *CompanyService) GetProfile(ctx context.Context) (*entity.CompanyProfile, error) {
	return s.companyRepo.Get(ctx)
}

// UpdateProfile validates and stores the profile.
func (s *CompanyService) UpdateProfile(ctx context.Context, profile entity.CompanyProfile) (*entity.CompanyProfile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Company name is required"},
		})
	}
	if err := s.companyRepo.Save(ctx, &profile); err != nil {
		return nil, err
	}
	s.logger.Info("company profile updated", zap.String("name", profile.Name))
	return &profile, nil
}
