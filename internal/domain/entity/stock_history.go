package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	StockTypeAdd    = "add"
	StockTypeRemove = "remove"
)

// Motivos de movimiento. Los ajustes manuales solo aceptan los cinco primeros;
// StockReasonSale lo usa exclusivamente el registro de ventas.
const (
	StockReasonPurchase   = "purchase"
	StockReasonReturn     = "return"
	StockReasonDamage     = "damage"
	StockReasonCorrection = "correction"
	StockReasonOther      = "other"
	StockReasonSale       = "sale"
)

// StockHistory es una entrada inmutable del libro de stock.
type StockHistory struct {
	ID        string
	ProductID string
	OwnerID   string // usuario que originó el movimiento
	Type      string // add | remove
	Quantity  int64  // siempre positivo; el signo lo da Type
	Reason    string
	Notes     string
	SourceID  string // compra o venta que originó el movimiento (vacío en ajustes manuales)
	Date      time.Time
}

// Delta devuelve la cantidad con signo aplicada al stock.
func (h *StockHistory) Delta() int64 {
	if h.Type == StockTypeRemove {
		return -h.Quantity
	}
	return h.Quantity
}
