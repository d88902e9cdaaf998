package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest entrada para abrir una venta. El total siempre inicia en 0.
type CreateTransactionRequest struct {
	PaymentMethod   string     `json:"payment_method" validate:"required"`
	TransactionDate *time.Time `json:"transaction_date"`
	CustomerName    *string    `json:"customer_name"`
	CustomerPhone   *string    `json:"customer_phone"`
	TableNumber     *string    `json:"table_number"`
}

// UpdateTransactionRequest edición administrativa de la cabecera; total_amount no es editable.
type UpdateTransactionRequest struct {
	PaymentMethod   *string    `json:"payment_method"`
	TransactionDate *time.Time `json:"transaction_date"`
	CustomerName    *string    `json:"customer_name"`
	CustomerPhone   *string    `json:"customer_phone"`
	TableNumber     *string    `json:"table_number"`
	Status          *string    `json:"status" validate:"omitempty,oneof=open finalized void"`
}

// TransactionResponse salida de una transacción con el nombre de quien la registró.
type TransactionResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"id_users"`
	UserName        string          `json:"user_name,omitempty"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaymentMethod   string          `json:"payment_method"`
	TransactionDate time.Time       `json:"transaction_date"`
	CustomerName    *string         `json:"customer_name,omitempty"`
	CustomerPhone   *string         `json:"customer_phone,omitempty"`
	TableNumber     *string         `json:"table_number,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// TransactionItemRequest entrada para crear o reemplazar una línea de venta.
type TransactionItemRequest struct {
	TransactionID string          `json:"id_transactions" validate:"required"`
	ProductID     string          `json:"id_products" validate:"required"`
	Quantity      int             `json:"quantity" validate:"min=1"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// TransactionItemResponse salida de una línea de venta con el nombre del producto.
type TransactionItemResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"id_transactions"`
	ProductID     string          `json:"id_products"`
	ProductName   string          `json:"product_name,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CreatedAt     time.Time       `json:"created_at"`
}
