package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReportUseCase reportes de ventas de solo lectura.
type ReportUseCase struct {
	repo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// SalesByCategory ventas agrupadas por categoría y producto, con total general.
func (uc *ReportUseCase) SalesByCategory(ctx context.Context, f dto.ReportFilter) (*dto.SalesReportResponse, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, fmt.Errorf("%w: to es anterior a from", domain.ErrInvalidInput)
	}
	rows, err := uc.repo.SalesByCategory(ctx, f.From, f.To)
	if err != nil {
		return nil, err
	}
	out := &dto.SalesReportResponse{Rows: make([]dto.SalesReportRow, 0, len(rows)), GrandTotal: decimal.Zero}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.SalesReportRow{
			Category:          r.Category,
			Product:           r.Product,
			TotalQuantitySold: r.TotalQuantitySold,
			TotalSales:        r.TotalSales,
		})
		out.GrandTotal = out.GrandTotal.Add(r.TotalSales)
	}
	return out, nil
}
