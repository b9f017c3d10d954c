package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales/add.
type CreateSaleRequest struct {
	UserID          string          `json:"userID" validate:"omitempty,uuid"`
	ProductID       string          `json:"productID" validate:"required,uuid"`
	StoreID         string          `json:"storeID" validate:"omitempty,uuid"`
	StockSold       int64           `json:"stockSold" validate:"required,gt=0"`
	SaleDate        string          `json:"saleDate"`
	TotalSaleAmount decimal.Decimal `json:"totalSaleAmount"`
}

// UpdateSaleRequest body para PUT /api/sales/update/:id. El producto no puede cambiar.
type UpdateSaleRequest struct {
	ProductID       string           `json:"productID" validate:"omitempty,uuid"`
	StoreID         *string          `json:"storeID" validate:"omitempty,uuid"`
	StockSold       *int64           `json:"stockSold" validate:"omitempty,gt=0"`
	SaleDate        *string          `json:"saleDate"`
	TotalSaleAmount *decimal.Decimal `json:"totalSaleAmount"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userID"`
	ProductID       string          `json:"productID"`
	ProductName     string          `json:"productName,omitempty"`
	StoreID         string          `json:"storeID,omitempty"`
	StoreName       string          `json:"storeName,omitempty"`
	StockSold       int64           `json:"stockSold"`
	SaleDate        string          `json:"saleDate"`
	TotalSaleAmount decimal.Decimal `json:"totalSaleAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// TotalSaleAmountResponse salida de GET /api/sales/get/:userID/totalsaleamount.
type TotalSaleAmountResponse struct {
	TotalSaleAmount decimal.Decimal `json:"totalSaleAmount"`
}

// MonthlySalesResponse salida de GET /api/sales/getmonthly (índice 0 = enero).
type MonthlySalesResponse struct {
	SalesAmount [12]decimal.Decimal `json:"salesAmount"`
}
