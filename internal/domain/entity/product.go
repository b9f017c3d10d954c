package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de un usuario (dueño).
// Stock solo lo modifica el mutador de stock; siempre es un entero >= 0.
type Product struct {
	ID           string
	OwnerID      string
	Name         string
	Manufacturer string
	Stock        int64
	Price        decimal.Decimal
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
