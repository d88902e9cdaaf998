package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction (DIP).
// Las lecturas incluyen UserName.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE). Solo dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error)
	// Update modifica los campos propios (no total_amount).
	Update(ctx context.Context, tx *entity.Transaction) error
	AddToTotal(ctx context.Context, id string, delta decimal.Decimal) error
	SetTotal(ctx context.Context, id string, total decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
