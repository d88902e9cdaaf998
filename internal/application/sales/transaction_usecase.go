package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TransactionUseCase CRUD de la cabecera de ventas.
type TransactionUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(txRunner TxRunner, txRepo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{txRunner: txRunner, txRepo: txRepo}
}

// Create abre una venta vacía (total 0, estado open) a nombre de userID.
func (uc *TransactionUseCase) Create(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		return nil, fmt.Errorf("%w: payment_method es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	date := now
	if in.TransactionDate != nil && !in.TransactionDate.IsZero() {
		date = *in.TransactionDate
	}
	tx := &entity.Transaction{
		ID:              uuid.New().String(),
		UserID:          userID,
		TotalAmount:     decimal.Zero,
		PaymentMethod:   method,
		TransactionDate: date,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		TableNumber:     in.TableNumber,
		Status:          entity.TransactionStatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tx.ID)
}

// List lista ventas por fecha descendente.
func (uc *TransactionUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	page = page.Normalize()
	list, err := uc.txRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{
		Items: items,
		Page:  page.Response(),
	}, nil
}

// GetByID obtiene una venta con el nombre de quien la registró.
func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	t, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return toTransactionResponse(t), nil
}

// Update edición administrativa de los campos propios. Anular (void) devuelve el stock de sus ítems.
func (uc *TransactionUseCase) Update(ctx context.Context, id string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Status != nil && !entity.ValidTransactionStatus(*in.Status) {
		return nil, fmt.Errorf("%w: status inválido", domain.ErrInvalidInput)
	}
	if in.PaymentMethod != nil && strings.TrimSpace(*in.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: payment_method vacío", domain.ErrInvalidInput)
	}
	err := uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
	) error {
		t, err := txRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTransactionNotFound
		}
		if in.Status != nil && *in.Status != t.Status {
			if !entity.CanTransition(t.Status, *in.Status) {
				return fmt.Errorf("%w: %s -> %s", domain.ErrConflict, t.Status, *in.Status)
			}
			if *in.Status == entity.TransactionStatusVoid {
				items, err := itemRepo.ListByTransaction(ctx, t.ID)
				if err != nil {
					return err
				}
				if err := restoreStock(ctx, productRepo, items); err != nil {
					return err
				}
			}
			t.Status = *in.Status
		}
		if in.PaymentMethod != nil {
			t.PaymentMethod = strings.TrimSpace(*in.PaymentMethod)
		}
		if in.TransactionDate != nil && !in.TransactionDate.IsZero() {
			t.TransactionDate = *in.TransactionDate
		}
		if in.CustomerName != nil {
			t.CustomerName = in.CustomerName
		}
		if in.CustomerPhone != nil {
			t.CustomerPhone = in.CustomerPhone
		}
		if in.TableNumber != nil {
			t.TableNumber = in.TableNumber
		}
		t.UpdatedAt = time.Now()
		return txRepo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete borra la venta y sus ítems devolviendo el stock, en una sola tx.
// Una venta anulada ya devolvió su stock al anularse.
func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
	) error {
		t, err := txRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTransactionNotFound
		}
		items, err := itemRepo.ListByTransaction(ctx, t.ID)
		if err != nil {
			return err
		}
		if t.Status != entity.TransactionStatusVoid {
			if err := restoreStock(ctx, productRepo, items); err != nil {
				return err
			}
		}
		if err := itemRepo.DeleteByTransaction(ctx, t.ID); err != nil {
			return err
		}
		return txRepo.Delete(ctx, t.ID)
	})
}

// restoreStock agrupa cantidades por producto y las devuelve en orden de id.
func restoreStock(ctx context.Context, productRepo repository.ProductRepository, items []*entity.TransactionItem) error {
	qty := make(map[string]int)
	for _, it := range items {
		qty[it.ProductID] += it.Quantity
	}
	ids := make([]string, 0, len(qty))
	for pid := range qty {
		ids = append(ids, pid)
	}
	sort.Strings(ids)
	for _, pid := range ids {
		if err := productRepo.IncrementStock(ctx, pid, qty[pid]); err != nil {
			return err
		}
	}
	return nil
}
