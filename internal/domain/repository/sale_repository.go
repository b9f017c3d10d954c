package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, s *entity.Sale) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Sale, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error)
	DeleteByProduct(ctx context.Context, productID string) error
	SumAmount(ctx context.Context, ownerID string, from, to time.Time) (decimal.Decimal, error)
	// MonthlyAmounts agrupa total_sale_amount por mes de sale_date (todos los años).
	MonthlyAmounts(ctx context.Context, ownerID string) ([]inventory.MonthlyAmount, error)
}
