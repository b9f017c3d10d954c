package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// AdjustmentInput entrada del mutador de stock.
type AdjustmentInput struct {
	ProductID string
	Type      string // add | remove
	Quantity  int64
	Reason    string
	Notes     string
	ActorID   string // usuario autenticado; debe ser dueño del producto
	SourceID  string // compra/venta que origina el movimiento (vacío en ajustes manuales)
}

// AdjustmentResult producto tras el ajuste y la entrada del libro creada.
type AdjustmentResult struct {
	Product      *entity.Product
	StockHistory *entity.StockHistory
}

// StockMutator único camino de escritura sobre products.stock.
// Cada cambio de stock se acompaña de exactamente una entrada del libro en la misma transacción.
type StockMutator struct {
	tx        TxRunner
	publisher EventPublisher
	observer  StockObserver
	log       *logger.Logger
	now       func() time.Time
}

// NewStockMutator construye el mutador. publisher y observer pueden ser nil.
func NewStockMutator(tx TxRunner, publisher EventPublisher, observer StockObserver, log *logger.Logger) *StockMutator {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if observer == nil {
		observer = NopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StockMutator{tx: tx, publisher: publisher, observer: observer, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (m *StockMutator) WithClock(now func() time.Time) *StockMutator {
	m.now = now
	return m
}

// ApplyAdjustment aplica un ajuste manual: valida, bloquea el producto, actualiza stock e inserta la entrada.
// Ambas escrituras se confirman juntas o ninguna.
func (m *StockMutator) ApplyAdjustment(ctx context.Context, in AdjustmentInput) (*AdjustmentResult, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("productId requerido: %w", domain.ErrInvalidInput)
	}
	if !domaininv.ValidType(in.Type) {
		return nil, fmt.Errorf("tipo %q: %w", in.Type, domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("cantidad debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	if !domaininv.IsManualReason(in.Reason) {
		return nil, fmt.Errorf("motivo %q: %w", in.Reason, domain.ErrInvalidInput)
	}

	var res *AdjustmentResult
	err := m.tx.Run(ctx, func(repos TxRepos) error {
		var err error
		res, err = m.ApplyInTx(ctx, repos, in)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			m.observer.StockRejected(in.Type)
		}
		return nil, err
	}
	m.AfterCommit(ctx, res)
	return res, nil
}

// ApplyInTx aplica un movimiento usando repositorios de una transacción abierta por el llamador.
// Lo usan compras, ventas y sus compensaciones; el llamador debe invocar AfterCommit tras confirmar.
func (m *StockMutator) ApplyInTx(ctx context.Context, repos TxRepos, in AdjustmentInput) (*AdjustmentResult, error) {
	if !domaininv.ValidType(in.Type) || !domaininv.ValidReason(in.Reason) {
		return nil, fmt.Errorf("movimiento %s/%s: %w", in.Type, in.Reason, domain.ErrInvalidInput)
	}
	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrNotFound)
	}
	if product.OwnerID != in.ActorID {
		return nil, fmt.Errorf("producto %s: %w", in.ProductID, domain.ErrForbidden)
	}

	newStock, err := domaininv.ApplyDelta(product.Stock, in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}
	if err := repos.Products.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}

	now := m.now()
	entry := &entity.StockHistory{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		OwnerID:   in.ActorID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Notes:     in.Notes,
		SourceID:  in.SourceID,
		Date:      now,
	}
	if err := repos.History.Create(ctx, entry); err != nil {
		return nil, err
	}

	product.Stock = newStock
	product.UpdatedAt = now
	return &AdjustmentResult{Product: product, StockHistory: entry}, nil
}

// AfterCommit efectos posteriores al commit: métricas y evento. Los fallos solo se registran.
func (m *StockMutator) AfterCommit(ctx context.Context, results ...*AdjustmentResult) {
	for _, r := range results {
		if r == nil || r.StockHistory == nil {
			continue
		}
		e := r.StockHistory
		m.observer.StockMoved(e.Type, e.Reason, e.Quantity)
		ev := StockAdjustedEvent{
			EntryID:    e.ID,
			ProductID:  e.ProductID,
			OwnerID:    e.OwnerID,
			Type:       e.Type,
			Quantity:   e.Quantity,
			Reason:     e.Reason,
			SourceID:   e.SourceID,
			StockAfter: r.Product.Stock,
			OccurredAt: e.Date,
		}
		if err := m.publisher.PublishStockAdjusted(ctx, ev); err != nil {
			m.log.Warn().Err(err).
				Str("entry_id", e.ID).
				Str("product_id", e.ProductID).
				Msg("no se pudo publicar stock.adjusted")
		}
	}
}
