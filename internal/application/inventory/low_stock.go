package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// DefaultLowStockThreshold umbral usado cuando no se configura otro.
const DefaultLowStockThreshold int64 = 10

// LowStockUseCase lista productos con stock <= umbral.
type LowStockUseCase struct {
	products         repository.ProductRepository
	defaultThreshold int64
}

// NewLowStockUseCase construye el caso de uso. Un umbral por defecto negativo se reemplaza por 10.
func NewLowStockUseCase(products repository.ProductRepository, defaultThreshold int64) *LowStockUseCase {
	if defaultThreshold < 0 {
		defaultThreshold = DefaultLowStockThreshold
	}
	return &LowStockUseCase{products: products, defaultThreshold: defaultThreshold}
}

// LowStock devuelve los productos del dueño con stock <= threshold. threshold nil usa el valor por defecto.
func (uc *LowStockUseCase) LowStock(ctx context.Context, ownerID string, threshold *int64) ([]dto.ProductResponse, error) {
	t := uc.defaultThreshold
	if threshold != nil {
		t = *threshold
	}
	if t < 0 {
		return nil, fmt.Errorf("umbral %d: %w", t, domain.ErrInvalidInput)
	}
	list, err := uc.products.ListLowStock(ctx, ownerID, t)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(list), nil
}
