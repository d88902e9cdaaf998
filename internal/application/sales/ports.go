package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que stock, ítems y total de la venta cambien juntos o no cambien.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
	) error) error
}

// ReceiptGenerator puerto de salida para renderizar el comprobante de una venta.
type ReceiptGenerator interface {
	GenerateReceiptPDF(tx *entity.Transaction, items []*entity.TransactionItem) ([]byte, error)
}
