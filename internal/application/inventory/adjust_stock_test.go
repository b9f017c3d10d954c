package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerID   = "11111111-1111-1111-1111-111111111111"
	otherID   = "22222222-2222-2222-2222-222222222222"
	productID = "33333333-3333-3333-3333-333333333333"
)

// ─────────────────────────────────────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	events []inventory.StockAdjustedEvent
	err    error
}

func (p *recordingPublisher) PublishStockAdjusted(_ context.Context, ev inventory.StockAdjustedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type recordingObserver struct {
	mu       sync.Mutex
	moved    int
	rejected int
}

func (o *recordingObserver) StockMoved(string, string, int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.moved++
}

func (o *recordingObserver) StockRejected(string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected++
}

type fixture struct {
	store     *memory.Store
	mutator   *inventory.StockMutator
	publisher *recordingPublisher
	observer  *recordingObserver
}

func newFixture(t *testing.T, stock int64) fixture {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: productID, OwnerID: ownerID, Name: "Tornillo", Manufacturer: "ACME",
		Stock: stock, Price: decimal.NewFromInt(100),
	}))
	pub := &recordingPublisher{}
	obs := &recordingObserver{}
	m := inventory.NewStockMutator(store, pub, obs, nil)
	return fixture{store: store, mutator: m, publisher: pub, observer: obs}
}

func (f fixture) stock(t *testing.T) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f fixture) entries(t *testing.T) []*entity.StockHistory {
	t.Helper()
	list, err := f.store.History().ListByProduct(context.Background(), ownerID, productID, 50)
	require.NoError(t, err)
	return list
}

// ─────────────────────────────────────────────────────────────────────────────
// ApplyAdjustment
// ─────────────────────────────────────────────────────────────────────────────

func TestApplyAdjustment_AddSumaYRegistra(t *testing.T) {
	f := newFixture(t, 10)

	res, err := f.mutator.ApplyAdjustment(context.Background(), inventory.AdjustmentInput{
		ProductID: productID, Type: "add", Quantity: 5, Reason: "return", Notes: "devolución", ActorID: ownerID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), res.Product.Stock)
	assert.Equal(t, int64(15), f.stock(t))

	entries := f.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "add", entries[0].Type)
	assert.Equal(t, int64(5), entries[0].Quantity)
	assert.Equal(t, "return", entries[0].Reason)
	assert.Equal(t, res.StockHistory.ID, entries[0].ID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, int64(15), f.publisher.events[0].StockAfter)
	assert.Equal(t, 1, f.observer.moved)
}

func TestApplyAdjustment_RemoveDentroDelStock(t *testing.T) {
	f := newFixture(t, 10)

	res, err := f.mutator.ApplyAdjustment(context.Background(), inventory.AdjustmentInput{
		ProductID: productID, Type: "remove", Quantity: 10, Reason: "damage", ActorID: ownerID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Product.Stock)
	assert.Equal(t, int64(0), f.stock(t))
	require.Len(t, f.entries(t), 1)
	assert.Equal(t, "remove", f.entries(t)[0].Type)
}

func TestApplyAdjustment_StockInsuficienteNoEscribe(t *testing.T) {
	f := newFixture(t, 3)

	_, err := f.mutator.ApplyAdjustment(context.Background(), inventory.AdjustmentInput{
		ProductID: productID, Type: "remove", Quantity: 4, Reason: "damage", ActorID: ownerID,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(3), f.stock(t))
	assert.Empty(t, f.entries(t))
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, 1, f.observer.rejected)
}

func TestApplyAdjustment_Validaciones(t *testing.T) {
	tests := []struct {
		name    string
		in      inventory.AdjustmentInput
		wantErr error
	}{
		{"sin producto", inventory.AdjustmentInput{Type: "add", Quantity: 1, Reason: "other", ActorID: ownerID}, domain.ErrInvalidInput},
		{"tipo inválido", inventory.AdjustmentInput{ProductID: productID, Type: "move", Quantity: 1, Reason: "other", ActorID: ownerID}, domain.ErrInvalidInput},
		{"cantidad cero", inventory.AdjustmentInput{ProductID: productID, Type: "add", Quantity: 0, Reason: "other", ActorID: ownerID}, domain.ErrInvalidInput},
		{"motivo sale no es manual", inventory.AdjustmentInput{ProductID: productID, Type: "remove", Quantity: 1, Reason: "sale", ActorID: ownerID}, domain.ErrInvalidInput},
		{"producto inexistente", inventory.AdjustmentInput{ProductID: "44444444-4444-4444-4444-444444444444", Type: "add", Quantity: 1, Reason: "other", ActorID: ownerID}, domain.ErrNotFound},
		{"producto de otro usuario", inventory.AdjustmentInput{ProductID: productID, Type: "add", Quantity: 1, Reason: "other", ActorID: otherID}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 5)
			_, err := f.mutator.ApplyAdjustment(context.Background(), tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int64(5), f.stock(t))
			assert.Empty(t, f.entries(t))
		})
	}
}

func TestApplyAdjustment_FalloDePublicacionNoFalla(t *testing.T) {
	f := newFixture(t, 1)
	f.publisher.err = errors.New("kafka caído")

	_, err := f.mutator.ApplyAdjustment(context.Background(), inventory.AdjustmentInput{
		ProductID: productID, Type: "add", Quantity: 1, Reason: "other", ActorID: ownerID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.stock(t))
}

func TestApplyAdjustment_Concurrente(t *testing.T) {
	f := newFixture(t, 100)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var insufficient int
	for i := 0; i < 120; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.mutator.ApplyAdjustment(context.Background(), inventory.AdjustmentInput{
				ProductID: productID, Type: "remove", Quantity: 1, Reason: "other", ActorID: ownerID,
			})
			if errors.Is(err, domain.ErrInsufficientStock) {
				mu.Lock()
				insufficient++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(0), f.stock(t))
	assert.Equal(t, 20, insufficient)
}

func TestApplyAdjustment_HistorialPrevioInmutable(t *testing.T) {
	f := newFixture(t, 10)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.mutator.WithClock(func() time.Time { clock = clock.Add(time.Minute); return clock })

	_, err := f.mutator.ApplyAdjustment(context.Background(), inventory.AdjustmentInput{
		ProductID: productID, Type: "add", Quantity: 2, Reason: "other", ActorID: ownerID,
	})
	require.NoError(t, err)
	before := f.entries(t)
	require.Len(t, before, 1)
	first := *before[0]

	_, err = f.mutator.ApplyAdjustment(context.Background(), inventory.AdjustmentInput{
		ProductID: productID, Type: "remove", Quantity: 1, Reason: "damage", ActorID: ownerID,
	})
	require.NoError(t, err)

	after := f.entries(t)
	require.Len(t, after, 2)
	assert.Equal(t, "remove", after[0].Type)
	assert.Equal(t, first, *after[1])
}
