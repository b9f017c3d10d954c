package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

func TestQty_SeparadorDeMiles(t *testing.T) {
	g := NewLedgerPDF()
	assert.Equal(t, "999", g.qty(999))
	assert.Equal(t, "12.345", g.qty(12345))
	assert.Equal(t, "-1.234.567", g.qty(-1234567))
}

func TestReasonLabel(t *testing.T) {
	assert.Equal(t, "Venta", reasonLabel(entity.StockReasonSale))
	assert.Equal(t, "desconocido", reasonLabel("desconocido"))
}

func TestRenderStockHistory_GeneraPDF(t *testing.T) {
	g := NewLedgerPDF()
	p := &entity.Product{ID: "p1", Name: "Tornillo", Manufacturer: "ACME", Stock: 1500}
	base := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	entries := []*entity.StockHistory{
		{ID: "h2", ProductID: "p1", Type: entity.StockTypeRemove, Quantity: 500, Reason: entity.StockReasonSale, Date: base.Add(time.Hour)},
		{ID: "h1", ProductID: "p1", Type: entity.StockTypeAdd, Quantity: 2000, Reason: entity.StockReasonPurchase, Notes: "lote 7", Date: base},
	}

	out, err := g.RenderStockHistory(p, entries)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := g.RenderStockHistory(p, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
