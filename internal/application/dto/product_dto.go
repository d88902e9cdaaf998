package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o actualizar un producto (JSON o multipart).
type ProductRequest struct {
	Name        string          `json:"name" form:"name" validate:"required,min=3,max=100"`
	Description string          `json:"description" form:"description"`
	Price       decimal.Decimal `json:"price" form:"price"`
	Stock       int             `json:"stock" form:"stock" validate:"min=0"`
	CategoryID  string          `json:"id_categories" form:"id_categories" validate:"required"`
}

// ImageUpload archivo opcional adjunto al producto.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ProductResponse salida de un producto con el nombre de su categoría.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CategoryID   string          `json:"id_categories"`
	CategoryName string          `json:"category_name,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
