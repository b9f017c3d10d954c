package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// StockHistoryRepository puerto del libro de stock. Solo inserción y lectura: las entradas son inmutables.
type StockHistoryRepository interface {
	Create(ctx context.Context, entry *entity.StockHistory) error
	// ListByProduct devuelve las entradas más recientes primero (date DESC).
	ListByProduct(ctx context.Context, ownerID, productID string, limit int) ([]*entity.StockHistory, error)
}
