package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter rango opcional sobre transaction_date.
type ReportFilter struct {
	From *time.Time
	To   *time.Time
}

// SalesReportRow fila del reporte de ventas por categoría y producto.
type SalesReportRow struct {
	Category          string          `json:"category"`
	Product           string          `json:"product"`
	TotalQuantitySold int64           `json:"total_quantity_sold"`
	TotalSales        decimal.Decimal `json:"total_sales"`
}

// SalesReportResponse reporte completo.
type SalesReportResponse struct {
	Rows       []SalesReportRow `json:"rows"`
	GrandTotal decimal.Decimal  `json:"grand_total"`
}
