package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthlyAmount total agregado de un mes (1 = enero).
type MonthlyAmount struct {
	Month  int
	Amount decimal.Decimal
}

// BucketByMonth reparte los totales en 12 posiciones (índice 0 = enero).
// Un mes fuera de 1..12 es un dato corrupto: devuelve ErrDefect en vez de indexar fuera de rango.
func BucketByMonth(rows []MonthlyAmount) ([12]decimal.Decimal, error) {
	var out [12]decimal.Decimal
	for i := range out {
		out[i] = decimal.Zero
	}
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			return out, fmt.Errorf("mes %d: %w", r.Month, domain.ErrDefect)
		}
		out[r.Month-1] = out[r.Month-1].Add(r.Amount)
	}
	return out, nil
}
