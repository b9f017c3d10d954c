package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo libro de stock sobre PostgreSQL. No expone UPDATE ni DELETE.
type StockHistoryRepo struct {
	q Querier
}

// NewStockHistoryRepository construye el repositorio (pool o tx).
func NewStockHistoryRepository(q Querier) *StockHistoryRepo {
	return &StockHistoryRepo{q: q}
}

// Create inserta una entrada del libro.
func (r *StockHistoryRepo) Create(ctx context.Context, e *entity.StockHistory) error {
	query := `
		INSERT INTO stock_history (id, product_id, owner_id, type, quantity, reason, notes, source_id, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.OwnerID, e.Type, e.Quantity, e.Reason, e.Notes, nullable(e.SourceID), e.Date,
	)
	if err != nil {
		return fmt.Errorf("insert stock history: %w", err)
	}
	return nil
}

// ListByProduct últimas entradas del producto (idx_stock_history_product_date).
func (r *StockHistoryRepo) ListByProduct(ctx context.Context, ownerID, productID string, limit int) ([]*entity.StockHistory, error) {
	query := `
		SELECT id, product_id, owner_id, type, quantity, reason, notes, source_id, date
		FROM stock_history
		WHERE product_id = $1 AND owner_id = $2
		ORDER BY date DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, productID, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock history: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockHistory, 0)
	for rows.Next() {
		var (
			e        entity.StockHistory
			sourceID *string
		)
		if err := rows.Scan(&e.ID, &e.ProductID, &e.OwnerID, &e.Type, &e.Quantity, &e.Reason,
			&e.Notes, &sourceID, &e.Date); err != nil {
			return nil, fmt.Errorf("scan stock history: %w", err)
		}
		e.SourceID = deref(sourceID)
		list = append(list, &e)
	}
	return list, rows.Err()
}
