package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras en memoria.
type PurchaseRepo struct {
	s    *Store
	inTx bool
}

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	defer r.s.write(r.inTx)()
	if _, ok := r.s.purchases[p.ID]; ok {
		return domain.ErrDuplicate
	}
	v := *p
	v.ProductName = ""
	r.s.purchases[p.ID] = row[entity.Purchase]{v: v, seq: r.s.next()}
	return nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	defer r.s.read(r.inTx)()
	rw, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	return r.view(rw.v), nil
}

func (r *PurchaseRepo) Update(_ context.Context, p *entity.Purchase) error {
	defer r.s.write(r.inTx)()
	rw, ok := r.s.purchases[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rw.v.QuantityPurchased = p.QuantityPurchased
	rw.v.PurchaseDate = p.PurchaseDate
	rw.v.TotalPurchaseAmount = p.TotalPurchaseAmount
	r.s.purchases[p.ID] = rw
	return nil
}

func (r *PurchaseRepo) Delete(_ context.Context, id string) error {
	defer r.s.write(r.inTx)()
	delete(r.s.purchases, id)
	return nil
}

func (r *PurchaseRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Purchase, error) {
	defer r.s.read(r.inTx)()
	return r.filter(func(p *entity.Purchase) bool { return p.OwnerID == ownerID }), nil
}

func (r *PurchaseRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Purchase, error) {
	defer r.s.read(r.inTx)()
	return r.filter(func(p *entity.Purchase) bool { return p.ProductID == productID }), nil
}

func (r *PurchaseRepo) DeleteByProduct(_ context.Context, productID string) error {
	defer r.s.write(r.inTx)()
	for id, rw := range r.s.purchases {
		if rw.v.ProductID == productID {
			delete(r.s.purchases, id)
		}
	}
	return nil
}

func (r *PurchaseRepo) SumAmount(_ context.Context, ownerID string, from, to time.Time) (decimal.Decimal, error) {
	defer r.s.read(r.inTx)()
	lo, hi := dateKey(from), dateKey(to)
	total := decimal.Zero
	for _, rw := range r.s.purchases {
		d := dateKey(rw.v.PurchaseDate)
		if rw.v.OwnerID == ownerID && d >= lo && d <= hi {
			total = total.Add(rw.v.TotalPurchaseAmount)
		}
	}
	return total, nil
}

func (r *PurchaseRepo) view(p entity.Purchase) *entity.Purchase {
	if prod, ok := r.s.products[p.ProductID]; ok {
		p.ProductName = prod.v.Name
	}
	return &p
}

func (r *PurchaseRepo) filter(keep func(*entity.Purchase) bool) []*entity.Purchase {
	rows := make([]row[entity.Purchase], 0)
	for _, rw := range r.s.purchases {
		if keep(&rw.v) {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.Purchase, 0, len(rows))
	for _, rw := range rows {
		out = append(out, r.view(rw.v))
	}
	return out
}
