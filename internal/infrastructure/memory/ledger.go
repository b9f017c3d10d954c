package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockHistoryRepository = (*StockHistoryRepo)(nil)

// StockHistoryRepo libro de stock en memoria (append-only).
type StockHistoryRepo struct {
	s    *Store
	inTx bool
}

func (r *StockHistoryRepo) Create(_ context.Context, e *entity.StockHistory) error {
	defer r.s.write(r.inTx)()
	r.s.history = append(r.s.history, *e)
	return nil
}

func (r *StockHistoryRepo) ListByProduct(_ context.Context, ownerID, productID string, limit int) ([]*entity.StockHistory, error) {
	defer r.s.read(r.inTx)()
	out := make([]*entity.StockHistory, 0)
	// recorrido inverso: a igual fecha gana la última insertada
	for i := len(r.s.history) - 1; i >= 0; i-- {
		e := r.s.history[i]
		if e.ProductID == productID && e.OwnerID == ownerID {
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
