package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesByCategory suma cantidades y total_price por categoría y producto, excluyendo ventas anuladas.
func (r *ReportRepo) SalesByCategory(ctx context.Context, from, to *time.Time) ([]repository.SalesByCategoryResult, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT c.name, p.name, SUM(i.quantity)::bigint, SUM(i.total_price)
		FROM transaction_items i
		JOIN transactions t ON t.id = i.transaction_id
		JOIN products p ON p.id = i.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE t.status <> $1`)
	args := []any{entity.TransactionStatusVoid}
	if from != nil {
		args = append(args, *from)
		fmt.Fprintf(&sb, ` AND t.transaction_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		fmt.Fprintf(&sb, ` AND t.transaction_date <= $%d`, len(args))
	}
	sb.WriteString(`
		GROUP BY c.name, p.name
		ORDER BY c.name ASC, SUM(i.total_price) DESC`)

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	defer rows.Close()
	list := make([]repository.SalesByCategoryResult, 0)
	for rows.Next() {
		var row repository.SalesByCategoryResult
		if err := rows.Scan(&row.Category, &row.Product, &row.TotalQuantitySold, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
