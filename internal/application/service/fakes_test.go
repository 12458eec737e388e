package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
)

// In-memory repository fakes. They hand back their live maps and slices, the
// same aliasing the JSON-backed implementations exhibit within one
// load-mutate-save cycle.

type fakeProductRepo struct {
	products []entity.Product
}

func (r *fakeProductRepo) List(_ context.Context) ([]entity.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) SaveAll(_ context.Context, products []entity.Product) error {
	r.products = products
	return nil
}

type fakeClientRepo struct {
	ledger entity.Ledger
	saves  int
}

func (r *fakeClientRepo) GetAll(_ context.Context) (entity.Ledger, error) {
	if r.ledger == nil {
		r.ledger = entity.Ledger{}
	}
	return r.ledger, nil
}

func (r *fakeClientRepo) SaveAll(_ context.Context, ledger entity.Ledger) error {
	r.ledger = ledger
	r.saves++
	return nil
}

type fakeCompanyRepo struct {
	profile *entity.CompanyProfile
}

func (r *fakeCompanyRepo) Get(_ context.Context) (*entity.CompanyProfile, error) {
	if r.profile == nil {
		return entity.DefaultCompanyProfile(), nil
	}
	return r.profile, nil
}

func (r *fakeCompanyRepo) Save(_ context.Context, profile *entity.CompanyProfile) error {
	r.profile = profile
	return nil
}

func fixedClock(value string) func() time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
