// Package sales contiene la aritmética de dominio de las ventas: totales de línea
// y coherencia entre la cabecera de la transacción y sus ítems.
package sales

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ErrTotalMismatch el total de la transacción no coincide con la suma de sus ítems.
var ErrTotalMismatch = errors.New("total de transacción incoherente")

// MoneyScale decimales de todo monto persistido (columnas NUMERIC(14,2)).
const MoneyScale = 2

// maxMoney mayor valor que cabe en NUMERIC(14,2).
var maxMoney = decimal.RequireFromString("999999999999.99")

// ValidateMoney rechaza montos negativos, con más de dos decimales significativos
// o fuera de rango; así lo que se responde es lo mismo que se guarda.
func ValidateMoney(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%s debe ser >= 0", field)
	}
	if !d.Equal(d.Round(MoneyScale)) {
		return fmt.Errorf("%s admite como máximo %d decimales", field, MoneyScale)
	}
	if d.GreaterThan(maxMoney) {
		return fmt.Errorf("%s excede el máximo permitido", field)
	}
	return nil
}

// LineTotal calcula TotalPrice = quantity * unitPrice en aritmética decimal exacta.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumTotals suma TotalPrice de los ítems (reconciliación suma-de-hijos).
func SumTotals(items []*entity.TransactionItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// ValidateLine valida cantidad y precio de una línea.
func ValidateLine(quantity int, unitPrice decimal.Decimal) error {
	if quantity < 1 {
		return fmt.Errorf("quantity debe ser >= 1")
	}
	if err := ValidateMoney("unit_price", unitPrice); err != nil {
		return err
	}
	return ValidateMoney("total_price", LineTotal(quantity, unitPrice))
}

// VerifyTotal comprueba que la cabecera y cada línea sean coherentes.
func VerifyTotal(tx *entity.Transaction, items []*entity.TransactionItem) error {
	if tx == nil {
		return fmt.Errorf("%w: transacción nula", ErrTotalMismatch)
	}
	var errs []error
	for _, it := range items {
		if expected := LineTotal(it.Quantity, it.UnitPrice); !it.TotalPrice.Equal(expected) {
			errs = append(errs, fmt.Errorf("ítem %s: total_price %s != %s", it.ID, it.TotalPrice.String(), expected.String()))
		}
	}
	if sum := SumTotals(items); !tx.TotalAmount.Equal(sum) {
		errs = append(errs, fmt.Errorf("total_amount %s != suma de ítems %s", tx.TotalAmount.String(), sum.String()))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrTotalMismatch}, errs...)...)
	}
	return nil
}
