package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ApplyDelta calcula el nuevo stock tras aplicar un movimiento (servicio de dominio puro).
// Un remove mayor que el stock actual devuelve ErrInsufficientStock sin modificar nada.
func ApplyDelta(stock int64, movementType string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return stock, fmt.Errorf("cantidad debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	switch movementType {
	case entity.StockTypeAdd:
		return stock + quantity, nil
	case entity.StockTypeRemove:
		if quantity > stock {
			return stock, fmt.Errorf("disponible %d, solicitado %d: %w", stock, quantity, domain.ErrInsufficientStock)
		}
		return stock - quantity, nil
	default:
		return stock, fmt.Errorf("tipo de movimiento %q: %w", movementType, domain.ErrInvalidInput)
	}
}

// ValidType indica si t es add o remove.
func ValidType(t string) bool {
	return t == entity.StockTypeAdd || t == entity.StockTypeRemove
}

// IsManualReason indica si el motivo es aceptado en un ajuste manual.
func IsManualReason(reason string) bool {
	switch reason {
	case entity.StockReasonPurchase, entity.StockReasonReturn, entity.StockReasonDamage,
		entity.StockReasonCorrection, entity.StockReasonOther:
		return true
	}
	return false
}

// ValidReason acepta los motivos manuales más el de venta (uso interno).
func ValidReason(reason string) bool {
	return IsManualReason(reason) || reason == entity.StockReasonSale
}

// Compensation devuelve el movimiento que lleva una cantidad registrada de before a after.
// sign es el tipo que produjo el registro original (add para compras, remove para ventas).
// ok es false cuando no hay diferencia.
func Compensation(sign string, before, after int64) (movementType, reason string, quantity int64, ok bool) {
	diff := after - before
	if diff == 0 {
		return "", "", 0, false
	}
	grow, shrink := entity.StockTypeAdd, entity.StockTypeRemove
	growReason := entity.StockReasonPurchase
	if sign == entity.StockTypeRemove {
		grow, shrink = entity.StockTypeRemove, entity.StockTypeAdd
		growReason = entity.StockReasonSale
	}
	if diff > 0 {
		return grow, growReason, diff, true
	}
	return shrink, entity.StockReasonCorrection, -diff, true
}
