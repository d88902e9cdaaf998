package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas incluyen CategoryName.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	ExistsByCategory(ctx context.Context, categoryID string) (bool, error)
	Delete(ctx context.Context, id string) error

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// DecrementStock resta qty solo si stock >= qty; false si no se afectó ninguna fila.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	IncrementStock(ctx context.Context, id string, qty int) error
}
