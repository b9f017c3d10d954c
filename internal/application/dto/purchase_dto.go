package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchase/add.
type CreatePurchaseRequest struct {
	UserID              string          `json:"userID" validate:"omitempty,uuid"`
	ProductID           string          `json:"productID" validate:"required,uuid"`
	QuantityPurchased   int64           `json:"quantityPurchased" validate:"required,gt=0"`
	PurchaseDate        string          `json:"purchaseDate"`
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
}

// UpdatePurchaseRequest body para PUT /api/purchase/update/:id. El producto no puede cambiar.
type UpdatePurchaseRequest struct {
	ProductID           string           `json:"productID" validate:"omitempty,uuid"`
	QuantityPurchased   *int64           `json:"quantityPurchased" validate:"omitempty,gt=0"`
	PurchaseDate        *string          `json:"purchaseDate"`
	TotalPurchaseAmount *decimal.Decimal `json:"totalPurchaseAmount"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID                  string          `json:"_id"`
	UserID              string          `json:"userID"`
	ProductID           string          `json:"productID"`
	ProductName         string          `json:"productName,omitempty"`
	QuantityPurchased   int64           `json:"quantityPurchased"`
	PurchaseDate        string          `json:"purchaseDate"`
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// TotalPurchaseAmountResponse salida de GET /api/purchase/get/:userID/totalpurchaseamount.
type TotalPurchaseAmountResponse struct {
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
}
