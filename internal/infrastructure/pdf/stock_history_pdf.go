// Package pdf genera el reporte PDF del libro de stock de un producto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + Fabricante  │  Stock actual + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cantidad | Motivo | Notas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Entradas / Salidas / Neto del periodo listado      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

var _ inventory.LedgerRenderer = (*LedgerPDF)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAdd     = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorRemove  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var reasonLabels = map[string]string{
	entity.StockReasonPurchase:   "Compra",
	entity.StockReasonReturn:     "Devolución",
	entity.StockReasonDamage:     "Daño",
	entity.StockReasonCorrection: "Corrección",
	entity.StockReasonOther:      "Otro",
	entity.StockReasonSale:       "Venta",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// LedgerPDF implementa inventory.LedgerRenderer con Maroto v2.
type LedgerPDF struct {
	printer *message.Printer
	now     func() time.Time
}

// NewLedgerPDF construye el generador; las cantidades usan separador de miles en español.
func NewLedgerPDF() *LedgerPDF {
	return &LedgerPDF{printer: message.NewPrinter(language.Spanish), now: time.Now}
}

// RenderStockHistory genera el PDF y devuelve sus bytes.
func (g *LedgerPDF) RenderStockHistory(product *entity.Product, entries []*entity.StockHistory) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(entries) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	for _, r := range g.tableRows(entries) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.summaryRow(entries))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *LedgerPDF) headerRow(p *entity.Product) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Fabricante: "+nonEmpty(p.Manufacturer, "-"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("HISTORIAL DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock actual: "+g.qty(p.Stock), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+g.now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 3, align.Left),
		h("Tipo", 2, align.Center),
		h("Cantidad", 2, align.Right),
		h("Motivo", 2, align.Left),
		h("Notas", 3, align.Left),
	)
}

// tableRows una fila por entrada, en el orden recibido (más reciente primero).
func (g *LedgerPDF) tableRows(entries []*entity.StockHistory) []core.Row {
	out := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		kind, color := "Entrada", colorAdd
		sign := "+"
		if e.Type == entity.StockTypeRemove {
			kind, color, sign = "Salida", colorRemove, "-"
		}
		out = append(out, row.New(7).Add(
			col.New(3).Add(text.New(e.Date.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(kind, props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
			col.New(2).Add(text.New(sign+g.qty(e.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(reasonLabel(e.Reason), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(e.Notes, "-"), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return out
}

func (g *LedgerPDF) summaryRow(entries []*entity.StockHistory) core.Row {
	var in, out int64
	for _, e := range entries {
		if e.Type == entity.StockTypeRemove {
			out += e.Quantity
		} else {
			in += e.Quantity
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(label("Entradas:"), label("Salidas:"), label("Neto:")),
		col.New(3).Add(value(g.qty(in)), value(g.qty(out)), value(g.qty(in-out))),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// qty formatea con separador de miles: 12345 -> "12.345".
func (g *LedgerPDF) qty(n int64) string {
	return g.printer.Sprintf("%d", n)
}

func reasonLabel(reason string) string {
	if l, ok := reasonLabels[reason]; ok {
		return l
	}
	return reason
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
