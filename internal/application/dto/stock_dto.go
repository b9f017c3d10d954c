package dto

import "time"

// AdjustStockRequest body para POST /api/stock/adjust.
type AdjustStockRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Type      string `json:"type" validate:"required,oneof=add remove"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"required,oneof=purchase return damage correction other"`
	Notes     string `json:"notes" validate:"max=500"`
	// UserID opcional; si viene debe coincidir con el usuario del token.
	UserID string `json:"userId" validate:"omitempty,uuid"`
}

// StockHistoryResponse entrada del libro de stock.
type StockHistoryResponse struct {
	ID        string          `json:"_id"`
	ProductID string          `json:"productId"`
	Product   *ProductSummary `json:"product,omitempty"`
	UserID    string          `json:"userId"`
	Type      string          `json:"type"`
	Quantity  int64           `json:"quantity"`
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes,omitempty"`
	SourceID  string          `json:"sourceId,omitempty"`
	Date      time.Time       `json:"date"`
}

// ProductSummary nombre y fabricante del producto de una entrada del libro.
type ProductSummary struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
}

// AdjustStockResponse salida de un ajuste aplicado.
type AdjustStockResponse struct {
	Message      string               `json:"message"`
	Product      ProductResponse      `json:"product"`
	StockHistory StockHistoryResponse `json:"stockHistory"`
}
