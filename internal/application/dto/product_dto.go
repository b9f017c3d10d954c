package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	UserID       string          `json:"userID" validate:"omitempty,uuid"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Manufacturer string          `json:"manufacturer" validate:"required,min=1,max=200"`
	Stock        int64           `json:"stock" validate:"min=0"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description" validate:"max=2000"`
}

// UpdateProductRequest entrada para POST /api/product/update (nunca modifica stock).
type UpdateProductRequest struct {
	ProductID    string           `json:"productID" validate:"required,uuid"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Manufacturer *string          `json:"manufacturer" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=2000"`
	Price        *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"_id"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	Manufacturer string          `json:"manufacturer"`
	Stock        int64           `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
