package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase registro de compra; al crearse suma stock vía libro.
type Purchase struct {
	ID                  string
	OwnerID             string
	ProductID           string
	QuantityPurchased   int64
	PurchaseDate        time.Time // solo fecha
	TotalPurchaseAmount decimal.Decimal
	CreatedAt           time.Time

	ProductName string // solo lectura (JOIN)
}
