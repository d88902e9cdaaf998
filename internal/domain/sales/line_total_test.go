package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/sales"
)

func TestLineTotal_SinDerivaDecimal(t *testing.T) {
	// 0.1 * 3 en float64 da 0.30000000000000004; en decimal debe ser exacto.
	got := sales.LineTotal(3, decimal.RequireFromString("0.10"))
	assert.True(t, got.Equal(decimal.RequireFromString("0.30")), "got %s", got)

	got = sales.LineTotal(3, decimal.RequireFromString("2.00"))
	assert.True(t, got.Equal(decimal.RequireFromString("6.00")))
}

func TestSumTotals(t *testing.T) {
	items := []*entity.TransactionItem{
		{TotalPrice: decimal.RequireFromString("0.10")},
		{TotalPrice: decimal.RequireFromString("0.20")},
		{TotalPrice: decimal.RequireFromString("6.00")},
	}
	assert.True(t, sales.SumTotals(items).Equal(decimal.RequireFromString("6.30")))
	assert.True(t, sales.SumTotals(nil).IsZero())
}

func TestValidateLine(t *testing.T) {
	assert.NoError(t, sales.ValidateLine(1, decimal.Zero))
	assert.Error(t, sales.ValidateLine(0, decimal.NewFromInt(1)))
	assert.Error(t, sales.ValidateLine(2, decimal.NewFromInt(-1)))
}

func TestValidateLine_MasDeDosDecimales(t *testing.T) {
	assert.Error(t, sales.ValidateLine(3, decimal.RequireFromString("0.333")))
	assert.NoError(t, sales.ValidateLine(3, decimal.RequireFromString("0.330")), "ceros finales no cambian el valor")
	assert.Error(t, sales.ValidateLine(2, decimal.RequireFromString("999999999999.99")), "total fuera de rango")
}

func TestValidateMoney(t *testing.T) {
	assert.NoError(t, sales.ValidateMoney("price", decimal.RequireFromString("12.50")))
	assert.Error(t, sales.ValidateMoney("price", decimal.RequireFromString("12.505")))
	assert.Error(t, sales.ValidateMoney("price", decimal.RequireFromString("-0.01")))
	assert.Error(t, sales.ValidateMoney("price", decimal.RequireFromString("1000000000000")))
}

func TestVerifyTotal(t *testing.T) {
	items := []*entity.TransactionItem{
		{ID: "a", Quantity: 3, UnitPrice: decimal.RequireFromString("2.00"), TotalPrice: decimal.RequireFromString("6.00")},
		{ID: "b", Quantity: 1, UnitPrice: decimal.RequireFromString("1.50"), TotalPrice: decimal.RequireFromString("1.50")},
	}
	tx := &entity.Transaction{TotalAmount: decimal.RequireFromString("7.50")}
	require.NoError(t, sales.VerifyTotal(tx, items))

	tx.TotalAmount = decimal.RequireFromString("6.00")
	err := sales.VerifyTotal(tx, items)
	assert.ErrorIs(t, err, sales.ErrTotalMismatch)

	tx.TotalAmount = decimal.RequireFromString("7.50")
	items[1].TotalPrice = decimal.RequireFromString("2.00")
	assert.ErrorIs(t, sales.VerifyTotal(tx, items), sales.ErrTotalMismatch)
}
