package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// TransactionItemRepository define el puerto de persistencia para las líneas de venta (DIP).
// Las lecturas incluyen ProductName.
type TransactionItemRepository interface {
	Create(ctx context.Context, item *entity.TransactionItem) error
	GetByID(ctx context.Context, id string) (*entity.TransactionItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.TransactionItem, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionItem, error)
	Update(ctx context.Context, item *entity.TransactionItem) error
	Delete(ctx context.Context, id string) error
	DeleteByTransaction(ctx context.Context, transactionID string) error
	// SumByTransaction suma total_price de los ítems vigentes (0 si no hay).
	SumByTransaction(ctx context.Context, transactionID string) (decimal.Decimal, error)
	ExistsByProduct(ctx context.Context, productID string) (bool, error)
}
