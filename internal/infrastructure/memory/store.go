// Package memory implementa los repositorios en memoria (STORE_DRIVER=memory y tests).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

// =============================================================================
// MEMORY STORE
// =============================================================================

// Store guarda todas las tablas en mapas protegidos por un único mutex.
// Las transacciones toman el mutex completo y restauran un snapshot si fn falla.
type Store struct {
	mu  sync.RWMutex
	seq int64

	products  map[string]row[entity.Product]
	history   []entity.StockHistory
	purchases map[string]row[entity.Purchase]
	sales     map[string]row[entity.Sale]
	stores    map[string]row[entity.Store]
	shipments map[string]row[entity.Shipment]
	users     map[string]row[entity.User]
}

// row valor almacenado más su orden de inserción (desempate en listados).
type row[T any] struct {
	v   T
	seq int64
}

// New construye un store vacío.
func New() *Store {
	return &Store{
		products:  make(map[string]row[entity.Product]),
		purchases: make(map[string]row[entity.Purchase]),
		sales:     make(map[string]row[entity.Sale]),
		stores:    make(map[string]row[entity.Store]),
		shipments: make(map[string]row[entity.Shipment]),
		users:     make(map[string]row[entity.User]),
	}
}

// Repositorios fuera de transacción.
func (s *Store) Products() *ProductRepo     { return &ProductRepo{s: s} }
func (s *Store) History() *StockHistoryRepo { return &StockHistoryRepo{s: s} }
func (s *Store) Purchases() *PurchaseRepo   { return &PurchaseRepo{s: s} }
func (s *Store) Sales() *SaleRepo           { return &SaleRepo{s: s} }
func (s *Store) Stores() *StoreRepo         { return &StoreRepo{s: s} }
func (s *Store) Shipments() *ShipmentRepo   { return &ShipmentRepo{s: s} }
func (s *Store) Users() *UserRepo           { return &UserRepo{s: s} }

// Run ejecuta fn con el store bloqueado; si fn devuelve error se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	repos := inventory.TxRepos{
		Products:  &ProductRepo{s: s, inTx: true},
		History:   &StockHistoryRepo{s: s, inTx: true},
		Purchases: &PurchaseRepo{s: s, inTx: true},
		Sales:     &SaleRepo{s: s, inTx: true},
	}
	if err := fn(repos); err != nil {
		s.restore(snap)
		return err
	}
	if err := ctx.Err(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	seq       int64
	products  map[string]row[entity.Product]
	history   []entity.StockHistory
	purchases map[string]row[entity.Purchase]
	sales     map[string]row[entity.Sale]
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		seq:       s.seq,
		products:  cloneMap(s.products),
		history:   append([]entity.StockHistory(nil), s.history...),
		purchases: cloneMap(s.purchases),
		sales:     cloneMap(s.sales),
	}
}

func (s *Store) restore(snap snapshot) {
	s.seq = snap.seq
	s.products = snap.products
	s.history = snap.history
	s.purchases = snap.purchases
	s.sales = snap.sales
}

func cloneMap[T any](m map[string]row[T]) map[string]row[T] {
	out := make(map[string]row[T], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// read y write toman el mutex salvo dentro de Run, que ya lo tiene.
func (s *Store) read(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) write(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// dateKey compara solo año/mes/día.
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
