package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale registro de venta; al crearse descuenta stock vía libro.
type Sale struct {
	ID              string
	OwnerID         string
	ProductID       string
	StoreID         string // opcional
	StockSold       int64
	SaleDate        time.Time // solo fecha
	TotalSaleAmount decimal.Decimal
	CreatedAt       time.Time

	ProductName string // solo lectura (JOIN)
	StoreName   string // solo lectura (JOIN)
}
