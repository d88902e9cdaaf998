package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible. Stock nunca queda negativo por una venta confirmada.
type Product struct {
	ID           string
	Name         string // único, 3-100, solo letras y espacios
	Description  string
	Price        decimal.Decimal
	Stock        int
	CategoryID   string
	CategoryName string // solo lectura (JOIN categories)
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
