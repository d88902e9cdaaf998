package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

const (
	teaID   = "prod-tea"
	coffeID = "prod-coffee"
	txOpen  = "tx-open"
	txOther = "tx-other"
)

func seedStore(t *testing.T) *memStore {
	t.Helper()
	s := newMemStore()
	s.products[teaID] = &entity.Product{ID: teaID, Name: "Tea", Price: decimal.RequireFromString("2.00"), Stock: 10, CategoryID: "cat-bev"}
	s.products[coffeID] = &entity.Product{ID: coffeID, Name: "Coffee", Price: decimal.RequireFromString("3.50"), Stock: 5, CategoryID: "cat-bev"}
	now := time.Now()
	for _, id := range []string{txOpen, txOther} {
		s.txs[id] = &entity.Transaction{
			ID: id, UserID: "user-1", TotalAmount: decimal.Zero, PaymentMethod: "cash",
			TransactionDate: now, Status: entity.TransactionStatusOpen, CreatedAt: now, UpdatedAt: now,
		}
	}
	return s
}

func newItemUseCase(s *memStore) *sales.ItemUseCase {
	return sales.NewItemUseCase(s, &memTxRepo{s}, &memItemRepo{s})
}

func itemReq(txID, productID string, qty int, price string) dto.TransactionItemRequest {
	return dto.TransactionItemRequest{
		TransactionID: txID,
		ProductID:     productID,
		Quantity:      qty,
		UnitPrice:     decimal.RequireFromString(price),
	}
}

// ─── escenario de punta a punta ──────────────────────────────────────────────

func TestItemLifecycle_TeaEscenario(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 3, "2.00"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("6.00").Equal(item.TotalPrice))
	assert.Equal(t, "Tea", item.ProductName)
	assert.Equal(t, 7, s.product(teaID).Stock)
	assert.True(t, decimal.RequireFromString("6.00").Equal(s.transaction(txOpen).TotalAmount))

	require.NoError(t, uc.DeleteItem(ctx, item.ID))
	assert.Equal(t, 10, s.product(teaID).Stock)
	assert.True(t, s.transaction(txOpen).TotalAmount.IsZero())
	assert.Equal(t, 0, s.itemCount())
}

// ─── createItem ──────────────────────────────────────────────────────────────

func TestCreateItem_StockInsuficienteSinCambios(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)

	_, err := uc.CreateItem(context.Background(), itemReq(txOpen, teaID, 11, "2.00"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, s.product(teaID).Stock)
	assert.True(t, s.transaction(txOpen).TotalAmount.IsZero())
	assert.Equal(t, 0, s.itemCount())
}

func TestCreateItem_Validaciones(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 0, "2.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, itemReq(txOpen, teaID, 1, "-0.01"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, itemReq("", teaID, 1, "2.00"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateItem(ctx, itemReq("tx-ghost", teaID, 1, "2.00"))
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	_, err = uc.CreateItem(ctx, itemReq(txOpen, "prod-ghost", 1, "2.00"))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateItem_DecimalExacto(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	// 0.10 * 3 en float daría 0.30000000000000004
	_, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 3, "0.10"))
	require.NoError(t, err)
	_, err = uc.CreateItem(ctx, itemReq(txOpen, coffeID, 1, "0.20"))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("0.50").Equal(s.transaction(txOpen).TotalAmount))
}

func TestCreateItem_PrecioConMasDeDosDecimales(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	_, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 3, "0.333"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, s.product(teaID).Stock)
	assert.True(t, s.transaction(txOpen).TotalAmount.IsZero())
	assert.Equal(t, 0, s.itemCount())

	out, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 3, "0.330"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.99").Equal(out.TotalPrice))
}

func TestCreateItem_TransaccionCerrada(t *testing.T) {
	s := seedStore(t)
	s.txs[txOpen].Status = entity.TransactionStatusFinalized
	uc := newItemUseCase(s)

	_, err := uc.CreateItem(context.Background(), itemReq(txOpen, teaID, 1, "2.00"))
	assert.ErrorIs(t, err, domain.ErrTransactionClosed)
	assert.Equal(t, 10, s.product(teaID).Stock)
}

func TestCreateItem_ConcurrenteNoSobrevende(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	const workers = 10
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		ok         int
		rejected   int
		unexpected []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 3, "2.00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				unexpected = append(unexpected, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, unexpected)
	assert.Equal(t, 3, ok, "con stock 10 y qty 3 solo caben 3 ventas")
	assert.Equal(t, workers-3, rejected)
	assert.Equal(t, 1, s.product(teaID).Stock)
	assert.True(t, decimal.RequireFromString("18.00").Equal(s.transaction(txOpen).TotalAmount))
}

// ─── updateItem ──────────────────────────────────────────────────────────────

func TestUpdateItem_NeteaReservaAnterior(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 8, "2.00"))
	require.NoError(t, err)
	require.Equal(t, 2, s.product(teaID).Stock)

	// 10 en total: solo es posible si se libera primero la reserva de 8
	updated, err := uc.UpdateItem(ctx, item.ID, itemReq(txOpen, teaID, 10, "1.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("15.00").Equal(updated.TotalPrice))
	assert.Equal(t, 0, s.product(teaID).Stock)
	assert.True(t, decimal.RequireFromString("15.00").Equal(s.transaction(txOpen).TotalAmount))
}

func TestUpdateItem_CambioDeProductoYTransaccion(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 3, "2.00"))
	require.NoError(t, err)

	updated, err := uc.UpdateItem(ctx, item.ID, itemReq(txOther, coffeID, 2, "3.50"))
	require.NoError(t, err)
	assert.Equal(t, "Coffee", updated.ProductName)

	assert.Equal(t, 10, s.product(teaID).Stock)
	assert.Equal(t, 3, s.product(coffeID).Stock)
	assert.True(t, s.transaction(txOpen).TotalAmount.IsZero())
	assert.True(t, decimal.RequireFromString("7.00").Equal(s.transaction(txOther).TotalAmount))
}

func TestUpdateItem_StockInsuficienteRevierte(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 3, "2.00"))
	require.NoError(t, err)

	_, err = uc.UpdateItem(ctx, item.ID, itemReq(txOpen, coffeID, 6, "3.50"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// rollback: la reserva original sigue intacta
	assert.Equal(t, 7, s.product(teaID).Stock)
	assert.Equal(t, 5, s.product(coffeID).Stock)
	assert.True(t, decimal.RequireFromString("6.00").Equal(s.transaction(txOpen).TotalAmount))
}

func TestUpdateItem_NoExiste(t *testing.T) {
	uc := newItemUseCase(seedStore(t))
	_, err := uc.UpdateItem(context.Background(), "item-ghost", itemReq(txOpen, teaID, 1, "2.00"))
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// ─── deleteItem / listItems / getItem ───────────────────────────────────────

func TestDeleteItem_RecalculaTotalConItemsRestantes(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	first, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 2, "2.00"))
	require.NoError(t, err)
	_, err = uc.CreateItem(ctx, itemReq(txOpen, coffeID, 1, "3.50"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteItem(ctx, first.ID))
	assert.True(t, decimal.RequireFromString("3.50").Equal(s.transaction(txOpen).TotalAmount))
	assert.Equal(t, 10, s.product(teaID).Stock)

	assert.ErrorIs(t, uc.DeleteItem(ctx, first.ID), domain.ErrItemNotFound)
}

func TestDeleteItem_TransaccionCerrada(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	item, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 2, "2.00"))
	require.NoError(t, err)
	s.txs[txOpen].Status = entity.TransactionStatusFinalized

	assert.ErrorIs(t, uc.DeleteItem(ctx, item.ID), domain.ErrTransactionClosed)
	assert.Equal(t, 8, s.product(teaID).Stock)
}

func TestListItems(t *testing.T) {
	s := seedStore(t)
	uc := newItemUseCase(s)
	ctx := context.Background()

	empty, err := uc.ListItems(ctx, txOpen)
	require.NoError(t, err)
	assert.Empty(t, empty)

	created, err := uc.CreateItem(ctx, itemReq(txOpen, teaID, 1, "2.00"))
	require.NoError(t, err)

	list, err := uc.ListItems(ctx, txOpen)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tea", list[0].ProductName)

	got, err := uc.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = uc.ListItems(ctx, "tx-ghost")
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	_, err = uc.GetItem(ctx, "item-ghost")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
