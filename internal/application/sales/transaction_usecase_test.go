package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestTransactionCreate_TotalCeroYAbierta(t *testing.T) {
	s := seedStore(t)
	uc := sales.NewTransactionUseCase(s, &memTxRepo{s})

	out, err := uc.Create(context.Background(), "user-1", dto.CreateTransactionRequest{
		PaymentMethod: " cash ",
		TableNumber:   strPtr("7"),
	})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.IsZero())
	assert.Equal(t, "open", out.Status)
	assert.Equal(t, "cash", out.PaymentMethod)
	assert.Equal(t, "user-1", out.UserID)
	assert.False(t, out.TransactionDate.IsZero())

	_, err = uc.Create(context.Background(), "user-1", dto.CreateTransactionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), "", dto.CreateTransactionRequest{PaymentMethod: "cash"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTransactionDelete_DevuelveStockYBorraItems(t *testing.T) {
	s := seedStore(t)
	items := newItemUseCase(s)
	uc := sales.NewTransactionUseCase(s, &memTxRepo{s})
	ctx := context.Background()

	_, err := items.CreateItem(ctx, itemReq(txOpen, teaID, 3, "2.00"))
	require.NoError(t, err)
	_, err = items.CreateItem(ctx, itemReq(txOpen, teaID, 2, "2.00"))
	require.NoError(t, err)
	_, err = items.CreateItem(ctx, itemReq(txOpen, coffeID, 1, "3.50"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, txOpen))
	assert.Equal(t, 10, s.product(teaID).Stock)
	assert.Equal(t, 5, s.product(coffeID).Stock)
	assert.Equal(t, 0, s.itemCount())

	_, err = uc.GetByID(ctx, txOpen)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, txOpen), domain.ErrTransactionNotFound)
}

func TestTransactionUpdate_NoEscribeTotal(t *testing.T) {
	s := seedStore(t)
	items := newItemUseCase(s)
	uc := sales.NewTransactionUseCase(s, &memTxRepo{s})
	ctx := context.Background()

	_, err := items.CreateItem(ctx, itemReq(txOpen, teaID, 3, "2.00"))
	require.NoError(t, err)

	out, err := uc.Update(ctx, txOpen, dto.UpdateTransactionRequest{
		PaymentMethod: strPtr("qris"),
		CustomerName:  strPtr("Budi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "qris", out.PaymentMethod)
	require.NotNil(t, out.CustomerName)
	assert.Equal(t, "Budi", *out.CustomerName)
	assert.True(t, decimal.RequireFromString("6.00").Equal(out.TotalAmount))
}

func TestTransactionUpdate_EstadosYAnulacion(t *testing.T) {
	s := seedStore(t)
	items := newItemUseCase(s)
	uc := sales.NewTransactionUseCase(s, &memTxRepo{s})
	ctx := context.Background()

	_, err := items.CreateItem(ctx, itemReq(txOpen, teaID, 4, "2.00"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, txOpen, dto.UpdateTransactionRequest{Status: strPtr("paid")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(ctx, txOpen, dto.UpdateTransactionRequest{Status: strPtr(entity.TransactionStatusFinalized)})
	require.NoError(t, err)
	assert.Equal(t, "finalized", out.Status)
	assert.Equal(t, 6, s.product(teaID).Stock)

	_, err = uc.Update(ctx, txOpen, dto.UpdateTransactionRequest{Status: strPtr(entity.TransactionStatusOpen)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Update(ctx, txOpen, dto.UpdateTransactionRequest{Status: strPtr(entity.TransactionStatusVoid)})
	require.NoError(t, err)
	assert.Equal(t, 10, s.product(teaID).Stock, "anular devuelve el stock")

	// borrar una venta anulada no devuelve el stock dos veces
	require.NoError(t, uc.Delete(ctx, txOpen))
	assert.Equal(t, 10, s.product(teaID).Stock)
}
