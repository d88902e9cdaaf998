package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/domain/sales"
)

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	txRepo    repository.TransactionRepository
	itemRepo  repository.TransactionItemRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(txRepo repository.TransactionRepository, itemRepo repository.TransactionItemRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{txRepo: txRepo, itemRepo: itemRepo, generator: generator}
}

// Generate devuelve el PDF y un nombre de archivo sugerido. Si la cabecera no cuadra con sus ítems
// el comprobante no se emite.
func (uc *ReceiptUseCase) Generate(ctx context.Context, transactionID string) ([]byte, string, error) {
	tx, err := uc.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, "", err
	}
	if tx == nil {
		return nil, "", domain.ErrTransactionNotFound
	}
	items, err := uc.itemRepo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, "", err
	}
	if err := sales.VerifyTotal(tx, items); err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateReceiptPDF(tx, items)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("receipt-%s.pdf", transactionID), nil
}
