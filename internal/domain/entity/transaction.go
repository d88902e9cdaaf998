package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción de venta.
const (
	TransactionStatusOpen      = "open"
	TransactionStatusFinalized = "finalized"
	TransactionStatusVoid      = "void"
)

// ValidTransactionStatus indica si s es un estado conocido.
func ValidTransactionStatus(s string) bool {
	switch s {
	case TransactionStatusOpen, TransactionStatusFinalized, TransactionStatusVoid:
		return true
	}
	return false
}

// Transaction cabecera de una venta. TotalAmount es derivado: suma de TotalPrice de sus ítems.
type Transaction struct {
	ID              string
	UserID          string
	UserName        string // solo lectura (JOIN users)
	TotalAmount     decimal.Decimal
	PaymentMethod   string
	TransactionDate time.Time
	CustomerName    *string
	CustomerPhone   *string
	TableNumber     *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOpen indica si la transacción acepta mutaciones de ítems.
func (t *Transaction) IsOpen() bool {
	return t.Status == TransactionStatusOpen
}

// CanTransition valida el cambio de estado: open -> finalized|void, finalized -> void.
// void es terminal.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case TransactionStatusOpen:
		return to == TransactionStatusFinalized || to == TransactionStatusVoid
	case TransactionStatusFinalized:
		return to == TransactionStatusVoid
	}
	return false
}
