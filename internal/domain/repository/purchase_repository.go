package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PurchaseRepository define el puerto de persistencia para Purchase.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	Update(ctx context.Context, p *entity.Purchase) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Purchase, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Purchase, error)
	DeleteByProduct(ctx context.Context, productID string) error
	// SumAmount suma total_purchase_amount con purchase_date en [from, to] (fechas inclusivas). Sin filas devuelve 0.
	SumAmount(ctx context.Context, ownerID string, from, to time.Time) (decimal.Decimal, error)
}
