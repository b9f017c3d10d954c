package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  repository.ProductRepository
	History   repository.StockHistoryRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no se persiste nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// StockAdjustedEvent evento publicado tras confirmar una entrada del libro.
type StockAdjustedEvent struct {
	EntryID    string    `json:"entryId"`
	ProductID  string    `json:"productId"`
	OwnerID    string    `json:"userId"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	Reason     string    `json:"reason"`
	SourceID   string    `json:"sourceId,omitempty"`
	StockAfter int64     `json:"stockAfter"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher publica eventos del libro (best-effort, después del commit).
type EventPublisher interface {
	PublishStockAdjusted(ctx context.Context, ev StockAdjustedEvent) error
}

// StockObserver recibe las métricas de negocio del mutador (ej. Prometheus).
type StockObserver interface {
	StockMoved(movementType, reason string, quantity int64)
	StockRejected(movementType string)
}

// NopPublisher no publica nada (sin brokers configurados).
type NopPublisher struct{}

// PublishStockAdjusted implementa EventPublisher.
func (NopPublisher) PublishStockAdjusted(context.Context, StockAdjustedEvent) error { return nil }

// NopObserver descarta las métricas.
type NopObserver struct{}

func (NopObserver) StockMoved(string, string, int64) {}
func (NopObserver) StockRejected(string)             {}
