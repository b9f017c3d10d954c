// Package analytics contiene los agregados de compras y ventas por periodo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Tipos de total soportados.
const (
	KindPurchases = "purchases"
	KindSales     = "sales"
)

// TotalsUseCase suma montos de compras o ventas dentro de una ventana week|month|year.
type TotalsUseCase struct {
	purchases repository.PurchaseRepository
	sales     repository.SaleRepository
	now       func() time.Time
}

// NewTotalsUseCase construye el caso de uso.
func NewTotalsUseCase(purchases repository.PurchaseRepository, sales repository.SaleRepository) *TotalsUseCase {
	return &TotalsUseCase{purchases: purchases, sales: sales, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *TotalsUseCase) WithClock(now func() time.Time) *TotalsUseCase {
	uc.now = now
	return uc
}

// TotalAmount devuelve la suma del periodo para el dueño. Periodos desconocidos se tratan como month;
// sin registros devuelve 0.
func (uc *TotalsUseCase) TotalAmount(ctx context.Context, kind, ownerID, period string) (decimal.Decimal, error) {
	w := inventory.ResolvePeriod(period, uc.now())
	from, to := w.FromDate(), w.ToDate()

	var (
		total decimal.Decimal
		err   error
	)
	switch kind {
	case KindPurchases:
		total, err = uc.purchases.SumAmount(ctx, ownerID, from, to)
	case KindSales:
		total, err = uc.sales.SumAmount(ctx, ownerID, from, to)
	default:
		return decimal.Zero, fmt.Errorf("total %q: %w", kind, domain.ErrInvalidInput)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("total %s: %w", kind, err)
	}
	return total, nil
}
