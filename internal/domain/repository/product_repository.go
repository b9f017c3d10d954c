package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los getters devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica datos descriptivos y precio. Nunca toca stock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock es exclusivo del mutador de stock.
	UpdateStock(ctx context.Context, id string, stock int64) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Product, error)
	// Search recibe el término ya normalizado con inventory.FoldName.
	Search(ctx context.Context, ownerID, foldedTerm string) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, ownerID string, threshold int64) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
