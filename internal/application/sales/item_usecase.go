package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/domain/sales"
)

// ItemUseCase motor de mutación de ítems: mantiene stock, ítems y total de la venta consistentes.
// Orden de bloqueo: ítem, transacciones (por id), productos (por id).
type ItemUseCase struct {
	txRunner TxRunner
	txRepo   repository.TransactionRepository
	itemRepo repository.TransactionItemRepository
}

// NewItemUseCase construye el caso de uso. txRepo e itemRepo (pool) se usan solo para lecturas.
func NewItemUseCase(txRunner TxRunner, txRepo repository.TransactionRepository, itemRepo repository.TransactionItemRepository) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, txRepo: txRepo, itemRepo: itemRepo}
}

func validateItemRequest(in dto.TransactionItemRequest) error {
	if strings.TrimSpace(in.TransactionID) == "" || strings.TrimSpace(in.ProductID) == "" {
		return fmt.Errorf("%w: id_transactions e id_products son obligatorios", domain.ErrInvalidInput)
	}
	if err := sales.ValidateLine(in.Quantity, in.UnitPrice); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// CreateItem registra una línea de venta: descuenta stock y suma al total en una sola tx.
func (uc *ItemUseCase) CreateItem(ctx context.Context, in dto.TransactionItemRequest) (*dto.TransactionItemResponse, error) {
	if err := validateItemRequest(in); err != nil {
		return nil, err
	}
	var created *entity.TransactionItem
	err := uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
	) error {
		tx, err := txRepo.GetForUpdate(ctx, in.TransactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrTransactionNotFound
		}
		if !tx.IsOpen() {
			return domain.ErrTransactionClosed
		}
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if product.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}

		item := &entity.TransactionItem{
			ID:            uuid.New().String(),
			TransactionID: tx.ID,
			ProductID:     product.ID,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			TotalPrice:    sales.LineTotal(in.Quantity, in.UnitPrice),
			CreatedAt:     time.Now(),
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		if err := txRepo.AddToTotal(ctx, tx.ID, item.TotalPrice); err != nil {
			return err
		}
		ok, err := productRepo.DecrementStock(ctx, product.ID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}
		item.ProductName = product.Name
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(created), nil
}

// UpdateItem reemplaza la línea. Libera primero la reserva anterior y luego valida y reserva la nueva;
// los totales de la transacción anterior y la nueva se recalculan como suma de sus ítems.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, id string, in dto.TransactionItemRequest) (*dto.TransactionItemResponse, error) {
	if err := validateItemRequest(in); err != nil {
		return nil, err
	}
	var updated *entity.TransactionItem
	err := uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}

		txIDs := lockOrder(item.TransactionID, in.TransactionID)
		for _, txID := range txIDs {
			tx, err := txRepo.GetForUpdate(ctx, txID)
			if err != nil {
				return err
			}
			if tx == nil {
				return domain.ErrTransactionNotFound
			}
			if !tx.IsOpen() {
				return domain.ErrTransactionClosed
			}
		}

		products := make(map[string]*entity.Product, 2)
		for _, pid := range lockOrder(item.ProductID, in.ProductID) {
			p, err := productRepo.GetForUpdate(ctx, pid)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrProductNotFound
			}
			products[pid] = p
		}

		if err := productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		products[item.ProductID].Stock += item.Quantity

		target := products[in.ProductID]
		if target.Stock < in.Quantity {
			return domain.ErrInsufficientStock
		}
		ok, err := productRepo.DecrementStock(ctx, target.ID, in.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInsufficientStock
		}

		item.TransactionID = in.TransactionID
		item.ProductID = in.ProductID
		item.Quantity = in.Quantity
		item.UnitPrice = in.UnitPrice
		item.TotalPrice = sales.LineTotal(in.Quantity, in.UnitPrice)
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		for _, txID := range txIDs {
			if err := recomputeTotal(ctx, txRepo, itemRepo, txID); err != nil {
				return err
			}
		}
		item.ProductName = target.Name
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// DeleteItem devuelve el stock al producto, borra la línea y recalcula el total de la venta.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, id string) error {
	return uc.txRunner.RunSales(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrItemNotFound
		}
		tx, err := txRepo.GetForUpdate(ctx, item.TransactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return domain.ErrTransactionNotFound
		}
		if !tx.IsOpen() {
			return domain.ErrTransactionClosed
		}
		if err := productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		if err := itemRepo.Delete(ctx, item.ID); err != nil {
			return err
		}
		return recomputeTotal(ctx, txRepo, itemRepo, tx.ID)
	})
}

// ListItems ítems de una transacción por orden de inserción. Una venta sin ítems devuelve lista vacía.
func (uc *ItemUseCase) ListItems(ctx context.Context, transactionID string) ([]dto.TransactionItemResponse, error) {
	tx, err := uc.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrTransactionNotFound
	}
	items, err := uc.itemRepo.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// GetItem obtiene una línea con el nombre del producto.
func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*dto.TransactionItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return toItemResponse(item), nil
}

func recomputeTotal(ctx context.Context, txRepo repository.TransactionRepository, itemRepo repository.TransactionItemRepository, txID string) error {
	sum, err := itemRepo.SumByTransaction(ctx, txID)
	if err != nil {
		return err
	}
	return txRepo.SetTotal(ctx, txID, sum)
}
