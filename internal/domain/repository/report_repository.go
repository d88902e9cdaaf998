package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesByCategoryResult fila cruda del reporte de ventas por categoría y producto.
type SalesByCategoryResult struct {
	Category          string
	Product           string
	TotalQuantitySold int64
	TotalSales        decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	// SalesByCategory agrupa ítems por categoría y producto; from/to opcionales (nil = sin límite).
	// Orden: categoría ASC, ventas DESC.
	SalesByCategory(ctx context.Context, from, to *time.Time) ([]SalesByCategoryResult, error)
}
