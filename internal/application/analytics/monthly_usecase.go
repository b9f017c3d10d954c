package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MonthlyUseCase reparte las ventas del dueño en 12 meses (todos los años juntos).
type MonthlyUseCase struct {
	sales repository.SaleRepository
}

// NewMonthlyUseCase construye el caso de uso.
func NewMonthlyUseCase(sales repository.SaleRepository) *MonthlyUseCase {
	return &MonthlyUseCase{sales: sales}
}

// MonthlyTotals devuelve [12]decimal con índice 0 = enero. Un mes inválido en los datos falla con ErrDefect.
func (uc *MonthlyUseCase) MonthlyTotals(ctx context.Context, ownerID string) ([12]decimal.Decimal, error) {
	rows, err := uc.sales.MonthlyAmounts(ctx, ownerID)
	if err != nil {
		return [12]decimal.Decimal{}, fmt.Errorf("ventas mensuales: %w", err)
	}
	return inventory.BucketByMonth(rows)
}
