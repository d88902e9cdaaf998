package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID          string
	Name        string // único, 3-50 caracteres
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
