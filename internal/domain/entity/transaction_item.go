package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItem línea de venta. UnitPrice es una foto del precio al momento de la venta.
type TransactionItem struct {
	ID            string
	TransactionID string
	ProductID     string
	ProductName   string // solo lectura (JOIN products)
	Quantity      int
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal // Quantity * UnitPrice
	CreatedAt     time.Time
}
