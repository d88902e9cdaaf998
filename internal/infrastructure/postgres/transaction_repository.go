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

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionSelect = `
	SELECT t.id, t.user_id, COALESCE(u.name, ''), t.total_amount, t.payment_method, t.transaction_date,
		t.customer_name, t.customer_phone, t.table_number, t.status, t.created_at, t.updated_at
	FROM transactions t
	LEFT JOIN users u ON u.id = t.user_id`

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL (pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador de persistencia para transacciones.
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, total_amount, payment_method, transaction_date,
			customer_name, customer_phone, table_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.UserID, t.TotalAmount, t.PaymentMethod, t.TransactionDate,
		t.CustomerName, t.CustomerPhone, t.TableNumber, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción con el nombre de quien la registró.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return r.getOne(ctx, transactionSelect+` WHERE t.id = $1`, id)
}

// GetForUpdate bloquea la cabecera (solo la fila de transactions).
func (r *TransactionRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `
		SELECT id, user_id, '', total_amount, payment_method, transaction_date,
			customer_name, customer_phone, table_number, status, created_at, updated_at
		FROM transactions WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *TransactionRepo) getOne(ctx context.Context, query string, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// List lista transacciones por fecha descendente.
func (r *TransactionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, transactionSelect+` ORDER BY t.transaction_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update modifica los campos propios de la cabecera. total_amount no se toca aquí.
func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	query := `
		UPDATE transactions SET payment_method = $2, transaction_date = $3, customer_name = $4,
			customer_phone = $5, table_number = $6, status = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, t.PaymentMethod, t.TransactionDate, t.CustomerName, t.CustomerPhone, t.TableNumber,
		t.Status, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// AddToTotal suma delta al total (camino incremental de createItem).
func (r *TransactionRepo) AddToTotal(ctx context.Context, id string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE transactions SET total_amount = total_amount + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("add to transaction total: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// SetTotal fija el total (reconciliación suma-de-hijos).
func (r *TransactionRepo) SetTotal(ctx context.Context, id string, total decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE transactions SET total_amount = $2, updated_at = now() WHERE id = $1`,
		id, total,
	)
	if err != nil {
		return fmt.Errorf("set transaction total: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// Delete elimina la cabecera. Los ítems deben borrarse antes en la misma tx.
func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.UserName, &t.TotalAmount, &t.PaymentMethod, &t.TransactionDate,
		&t.CustomerName, &t.CustomerPhone, &t.TableNumber, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
