package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var (
	_ repository.StoreRepository    = (*StoreRepo)(nil)
	_ repository.ShipmentRepository = (*ShipmentRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// StoreRepo tiendas en memoria.
type StoreRepo struct {
	s *Store
}

func (r *StoreRepo) Create(_ context.Context, st *entity.Store) error {
	defer r.s.write(false)()
	if _, ok := r.s.stores[st.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.stores[st.ID] = row[entity.Store]{v: *st, seq: r.s.next()}
	return nil
}

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	defer r.s.read(false)()
	rw, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	st := rw.v
	return &st, nil
}

func (r *StoreRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Store, error) {
	defer r.s.read(false)()
	rows := make([]row[entity.Store], 0)
	for _, rw := range r.s.stores {
		if rw.v.OwnerID == ownerID {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.Store, 0, len(rows))
	for i := range rows {
		st := rows[i].v
		out = append(out, &st)
	}
	return out, nil
}

// ShipmentRepo envíos en memoria; container_id es único.
type ShipmentRepo struct {
	s *Store
}

func (r *ShipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	defer r.s.write(false)()
	if r.containerTaken(sh.ContainerID, "") {
		return domain.ErrDuplicate
	}
	r.s.shipments[sh.ID] = row[entity.Shipment]{v: cloneShipment(*sh), seq: r.s.next()}
	return nil
}

func (r *ShipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	defer r.s.read(false)()
	rw, ok := r.s.shipments[id]
	if !ok {
		return nil, nil
	}
	sh := cloneShipment(rw.v)
	return &sh, nil
}

func (r *ShipmentRepo) Update(_ context.Context, sh *entity.Shipment) error {
	defer r.s.write(false)()
	rw, ok := r.s.shipments[sh.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if r.containerTaken(sh.ContainerID, sh.ID) {
		return domain.ErrDuplicate
	}
	rw.v = cloneShipment(*sh)
	r.s.shipments[sh.ID] = rw
	return nil
}

func (r *ShipmentRepo) Delete(_ context.Context, id string) error {
	defer r.s.write(false)()
	delete(r.s.shipments, id)
	return nil
}

func (r *ShipmentRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Shipment, error) {
	defer r.s.read(false)()
	rows := make([]row[entity.Shipment], 0)
	for _, rw := range r.s.shipments {
		if rw.v.OwnerID == ownerID {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.Shipment, 0, len(rows))
	for _, rw := range rows {
		sh := cloneShipment(rw.v)
		out = append(out, &sh)
	}
	return out, nil
}

func (r *ShipmentRepo) containerTaken(containerID, exceptID string) bool {
	for id, rw := range r.s.shipments {
		if id != exceptID && rw.v.ContainerID == containerID {
			return true
		}
	}
	return false
}

func cloneShipment(sh entity.Shipment) entity.Shipment {
	sh.Items = append([]entity.ShipmentItem(nil), sh.Items...)
	return sh
}

// UserRepo usuarios en memoria; el email es la clave natural.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Upsert(_ context.Context, u *entity.User) error {
	defer r.s.write(false)()
	email := strings.ToLower(u.Email)
	for id, rw := range r.s.users {
		if strings.ToLower(rw.v.Email) == email {
			u.ID = id
			u.CreatedAt = rw.v.CreatedAt
			rw.v = *u
			r.s.users[id] = rw
			return nil
		}
	}
	r.s.users[u.ID] = row[entity.User]{v: *u, seq: r.s.next()}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.s.read(false)()
	rw, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	u := rw.v
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	defer r.s.read(false)()
	email = strings.ToLower(email)
	for _, rw := range r.s.users {
		if strings.ToLower(rw.v.Email) == email {
			u := rw.v
			return &u, nil
		}
	}
	return nil, nil
}
