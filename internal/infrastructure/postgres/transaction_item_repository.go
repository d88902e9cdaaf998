package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.TransactionItemRepository = (*TransactionItemRepo)(nil)

const itemSelect = `
	SELECT i.id, i.transaction_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.unit_price,
		i.total_price, i.created_at
	FROM transaction_items i
	LEFT JOIN products p ON p.id = i.product_id`

// TransactionItemRepo implementación del puerto TransactionItemRepository sobre PostgreSQL (pool o tx).
type TransactionItemRepo struct {
	q Querier
}

// NewTransactionItemRepository construye el adaptador de persistencia para ítems de venta.
func NewTransactionItemRepository(q Querier) *TransactionItemRepo {
	return &TransactionItemRepo{q: q}
}

// Create inserta una línea de venta.
func (r *TransactionItemRepo) Create(ctx context.Context, it *entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.TransactionID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice, it.CreatedAt,
	)
	if err != nil {
		return mapItemWriteError("insert transaction item", err)
	}
	return nil
}

// GetByID obtiene un ítem con el nombre del producto.
func (r *TransactionItemRepo) GetByID(ctx context.Context, id string) (*entity.TransactionItem, error) {
	return r.getOne(ctx, itemSelect+` WHERE i.id = $1`, id)
}

// GetForUpdate bloquea la fila del ítem.
func (r *TransactionItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, product_id, '', quantity, unit_price, total_price, created_at
		FROM transaction_items WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *TransactionItemRepo) getOne(ctx context.Context, query, id string) (*entity.TransactionItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction item: %w", err)
	}
	return it, nil
}

// ListByTransaction lista los ítems de una transacción por orden de inserción.
func (r *TransactionItemRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionItem, error) {
	rows, err := r.q.Query(ctx, itemSelect+` WHERE i.transaction_id = $1 ORDER BY i.created_at, i.id`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.TransactionItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update reemplaza transacción, producto, cantidad y precios del ítem.
func (r *TransactionItemRepo) Update(ctx context.Context, it *entity.TransactionItem) error {
	query := `
		UPDATE transaction_items SET transaction_id = $2, product_id = $3, quantity = $4,
			unit_price = $5, total_price = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		it.ID, it.TransactionID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	if err != nil {
		return mapItemWriteError("update transaction item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete elimina un ítem.
func (r *TransactionItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM transaction_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteByTransaction elimina todos los ítems de una transacción.
func (r *TransactionItemRepo) DeleteByTransaction(ctx context.Context, transactionID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transaction_items WHERE transaction_id = $1`, transactionID); err != nil {
		return fmt.Errorf("delete transaction items: %w", err)
	}
	return nil
}

// SumByTransaction suma total_price de los ítems de la transacción.
func (r *TransactionItemRepo) SumByTransaction(ctx context.Context, transactionID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM transaction_items WHERE transaction_id = $1`,
		transactionID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum transaction items: %w", err)
	}
	return sum, nil
}

// ExistsByProduct indica si algún ítem referencia el producto.
func (r *TransactionItemRepo) ExistsByProduct(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transaction_items WHERE product_id = $1)`, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("items by product: %w", err)
	}
	return exists, nil
}

func scanItem(row pgx.Row) (*entity.TransactionItem, error) {
	var it entity.TransactionItem
	err := row.Scan(&it.ID, &it.TransactionID, &it.ProductID, &it.ProductName, &it.Quantity,
		&it.UnitPrice, &it.TotalPrice, &it.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func mapItemWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
