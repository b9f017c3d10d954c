package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/ports"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, s *memory.Store, id, owner string, stock int64) {
	t.Helper()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, OwnerID: owner, Name: "Producto " + id, Manufacturer: "ACME", Stock: stock,
	}))
}

func TestRun_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", "u1", 5)

	boom := errors.New("boom")
	err := s.Run(ctx, func(repos inventory.TxRepos) error {
		require.NoError(t, repos.Products.UpdateStock(ctx, "p1", 99))
		require.NoError(t, repos.History.Create(ctx, &entity.StockHistory{ID: "h1", ProductID: "p1", OwnerID: "u1", Type: "add", Quantity: 94}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Stock)
	entries, err := s.History().ListByProduct(ctx, "u1", "p1", 50)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", "u1", 5)

	require.NoError(t, s.Run(ctx, func(repos inventory.TxRepos) error {
		return repos.Products.UpdateStock(ctx, "p1", 7)
	}))
	p, _ := s.Products().GetByID(ctx, "p1")
	assert.Equal(t, int64(7), p.Stock)
}

func TestUpdateStock_NegativoRechazado(t *testing.T) {
	s := memory.New()
	seedProduct(t, s, "p1", "u1", 1)
	err := s.Products().UpdateStock(context.Background(), "p1", -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestSearch_SinTildesNiMayusculas(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "a", OwnerID: "u1", Name: "Café Molido"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "b", OwnerID: "u1", Name: "Azúcar"}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "c", OwnerID: "u2", Name: "Cafe en grano"}))

	list, err := s.Products().Search(ctx, "u1", "cafe")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)
}

func TestHistory_OrdenDescendenteYLimite(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		require.NoError(t, s.History().Create(ctx, &entity.StockHistory{
			ID: string(rune('A' + i%26)), ProductID: "p1", OwnerID: "u1", Type: "add", Quantity: int64(i + 1),
			Date: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	list, err := s.History().ListByProduct(ctx, "u1", "p1", 50)
	require.NoError(t, err)
	require.Len(t, list, 50)
	assert.Equal(t, int64(60), list[0].Quantity)
	assert.Equal(t, int64(11), list[49].Quantity)

	other, err := s.History().ListByProduct(ctx, "u2", "p1", 50)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSumAmount_FechasInclusivas(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }
	for i, d := range []time.Time{day(2, 1), day(2, 15), day(2, 29), day(3, 1)} {
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
			ID: string(rune('a' + i)), OwnerID: "u1", ProductID: "p1", StockSold: 1,
			SaleDate: d, TotalSaleAmount: decimal.NewFromInt(10),
		}))
	}
	total, err := s.Sales().SumAmount(ctx, "u1", day(2, 1), day(2, 29))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(30)), total.String())
}

func TestShipment_ContenedorDuplicado(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Shipments().Create(ctx, &entity.Shipment{ID: "s1", OwnerID: "u1", ContainerID: "MSCU1"}))
	err := s.Shipments().Create(ctx, &entity.Shipment{ID: "s2", OwnerID: "u1", ContainerID: "MSCU1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, s.Shipments().Create(ctx, &entity.Shipment{ID: "s3", OwnerID: "u1", ContainerID: "MSCU2"}))
	err = s.Shipments().Update(ctx, &entity.Shipment{ID: "s3", OwnerID: "u1", ContainerID: "MSCU1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIdempotencyStore_PrimeraRespuestaGana(t *testing.T) {
	ctx := context.Background()
	s := memory.NewIdempotencyStore()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Save(ctx, "k", ports.CachedResponse{Status: 200, Body: []byte(`{"a":1}`)}, time.Hour))
	require.NoError(t, s.Save(ctx, "k", ports.CachedResponse{Status: 500, Body: []byte(`x`)}, time.Hour))

	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 200, got.Status)
	assert.JSONEq(t, `{"a":1}`, string(got.Body))
}

func TestIdempotencyStore_Expira(t *testing.T) {
	ctx := context.Background()
	s := memory.NewIdempotencyStore()
	require.NoError(t, s.Save(ctx, "k", ports.CachedResponse{Status: 200}, -time.Second))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}
