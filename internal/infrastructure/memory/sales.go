package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	defer r.s.write(r.inTx)()
	if _, ok := r.s.sales[s.ID]; ok {
		return domain.ErrDuplicate
	}
	v := *s
	v.ProductName, v.StoreName = "", ""
	r.s.sales[s.ID] = row[entity.Sale]{v: v, seq: r.s.next()}
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.s.read(r.inTx)()
	rw, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return r.view(rw.v), nil
}

func (r *SaleRepo) Update(_ context.Context, s *entity.Sale) error {
	defer r.s.write(r.inTx)()
	rw, ok := r.s.sales[s.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rw.v.StoreID = s.StoreID
	rw.v.StockSold = s.StockSold
	rw.v.SaleDate = s.SaleDate
	rw.v.TotalSaleAmount = s.TotalSaleAmount
	r.s.sales[s.ID] = rw
	return nil
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	defer r.s.write(r.inTx)()
	delete(r.s.sales, id)
	return nil
}

func (r *SaleRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Sale, error) {
	defer r.s.read(r.inTx)()
	return r.filter(func(s *entity.Sale) bool { return s.OwnerID == ownerID }), nil
}

func (r *SaleRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Sale, error) {
	defer r.s.read(r.inTx)()
	return r.filter(func(s *entity.Sale) bool { return s.ProductID == productID }), nil
}

func (r *SaleRepo) DeleteByProduct(_ context.Context, productID string) error {
	defer r.s.write(r.inTx)()
	for id, rw := range r.s.sales {
		if rw.v.ProductID == productID {
			delete(r.s.sales, id)
		}
	}
	return nil
}

func (r *SaleRepo) SumAmount(_ context.Context, ownerID string, from, to time.Time) (decimal.Decimal, error) {
	defer r.s.read(r.inTx)()
	lo, hi := dateKey(from), dateKey(to)
	total := decimal.Zero
	for _, rw := range r.s.sales {
		d := dateKey(rw.v.SaleDate)
		if rw.v.OwnerID == ownerID && d >= lo && d <= hi {
			total = total.Add(rw.v.TotalSaleAmount)
		}
	}
	return total, nil
}

func (r *SaleRepo) MonthlyAmounts(_ context.Context, ownerID string) ([]inventory.MonthlyAmount, error) {
	defer r.s.read(r.inTx)()
	byMonth := make(map[int]decimal.Decimal)
	for _, rw := range r.s.sales {
		if rw.v.OwnerID != ownerID {
			continue
		}
		m := int(rw.v.SaleDate.Month())
		byMonth[m] = byMonth[m].Add(rw.v.TotalSaleAmount)
	}
	out := make([]inventory.MonthlyAmount, 0, len(byMonth))
	for m, amount := range byMonth {
		out = append(out, inventory.MonthlyAmount{Month: m, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *SaleRepo) view(s entity.Sale) *entity.Sale {
	if p, ok := r.s.products[s.ProductID]; ok {
		s.ProductName = p.v.Name
	}
	if st, ok := r.s.stores[s.StoreID]; ok {
		s.StoreName = st.v.Name
	}
	return &s
}

func (r *SaleRepo) filter(keep func(*entity.Sale) bool) []*entity.Sale {
	rows := make([]row[entity.Sale], 0)
	for _, rw := range r.s.sales {
		if keep(&rw.v) {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.Sale, 0, len(rows))
	for _, rw := range rows {
		out = append(out, r.view(rw.v))
	}
	return out
}
