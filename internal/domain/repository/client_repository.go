package repository

import (
	"context"

	"github.com/cantina-ativa/canteen-api/internal/domain/entity"
)

// ClientRepository defines the interface for ledger persistence. The whole
// client document is loaded at the start of each operation and rewritten at
// the end.
type ClientRepository interface {
	GetAll(ctx context.Context) (entity.Ledger, error)
	SaveAll(ctx context.Context, ledger entity.Ledger) error
}
