package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.write(r.inTx)()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = row[entity.Product]{v: *p, seq: r.s.next()}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.s.read(r.inTx)()
	rw, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	p := rw.v
	return &p, nil
}

// GetForUpdate equivale a GetByID: dentro de Run el store ya está bloqueado.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.write(r.inTx)()
	rw, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	rw.v.Name = p.Name
	rw.v.Manufacturer = p.Manufacturer
	rw.v.Description = p.Description
	rw.v.Price = p.Price
	rw.v.UpdatedAt = p.UpdatedAt
	r.s.products[p.ID] = rw
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int64) error {
	defer r.s.write(r.inTx)()
	if stock < 0 {
		return domain.ErrInsufficientStock
	}
	rw, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	rw.v.Stock = stock
	rw.v.UpdatedAt = time.Now()
	r.s.products[id] = rw
	return nil
}

func (r *ProductRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Product, error) {
	defer r.s.read(r.inTx)()
	return r.filter(func(p *entity.Product) bool { return p.OwnerID == ownerID }), nil
}

func (r *ProductRepo) Search(_ context.Context, ownerID, foldedTerm string) ([]*entity.Product, error) {
	defer r.s.read(r.inTx)()
	return r.filter(func(p *entity.Product) bool {
		return p.OwnerID == ownerID && strings.Contains(inventory.FoldName(p.Name), foldedTerm)
	}), nil
}

func (r *ProductRepo) ListLowStock(_ context.Context, ownerID string, threshold int64) ([]*entity.Product, error) {
	defer r.s.read(r.inTx)()
	list := r.filter(func(p *entity.Product) bool { return p.OwnerID == ownerID && p.Stock <= threshold })
	sort.SliceStable(list, func(i, j int) bool { return list[i].Stock < list[j].Stock })
	return list, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.write(r.inTx)()
	delete(r.s.products, id)
	return nil
}

// filter devuelve copias ordenadas por inserción descendente (más reciente primero).
func (r *ProductRepo) filter(keep func(*entity.Product) bool) []*entity.Product {
	rows := make([]row[entity.Product], 0)
	for _, rw := range r.s.products {
		if keep(&rw.v) {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		p := rows[i].v
		out = append(out, &p)
	}
	return out
}
