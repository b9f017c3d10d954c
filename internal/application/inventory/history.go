package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// MaxHistoryEntries tope de entradas devueltas por consulta del libro.
const MaxHistoryEntries = 50

// LedgerRenderer genera el reporte PDF de un libro de stock.
type LedgerRenderer interface {
	RenderStockHistory(product *entity.Product, entries []*entity.StockHistory) ([]byte, error)
}

// HistoryUseCase consultas de solo lectura sobre el libro de stock.
type HistoryUseCase struct {
	products repository.ProductRepository
	history  repository.StockHistoryRepository
	renderer LedgerRenderer
}

// NewHistoryUseCase construye el caso de uso. renderer puede ser nil si no se exponen PDFs.
func NewHistoryUseCase(products repository.ProductRepository, history repository.StockHistoryRepository, renderer LedgerRenderer) *HistoryUseCase {
	return &HistoryUseCase{products: products, history: history, renderer: renderer}
}

// History devuelve las últimas entradas del producto (date DESC), como máximo 50.
// Las entradas sobreviven al borrado del producto; en ese caso se devuelven sin nombre ni fabricante.
func (uc *HistoryUseCase) History(ctx context.Context, ownerID, productID string, limit int) ([]dto.StockHistoryResponse, error) {
	product, entries, err := uc.load(ctx, ownerID, productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToStockHistoryResponse(e, product))
	}
	return out, nil
}

// HistoryPDF renderiza las últimas 50 entradas de un producto existente.
func (uc *HistoryUseCase) HistoryPDF(ctx context.Context, ownerID, productID string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("reporte PDF no configurado")
	}
	product, entries, err := uc.load(ctx, ownerID, productID, MaxHistoryEntries)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return uc.renderer.RenderStockHistory(product, entries)
}

func (uc *HistoryUseCase) load(ctx context.Context, ownerID, productID string, limit int) (*entity.Product, []*entity.StockHistory, error) {
	if limit <= 0 || limit > MaxHistoryEntries {
		limit = MaxHistoryEntries
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if product != nil && product.OwnerID != ownerID {
		return nil, nil, fmt.Errorf("producto %s: %w", productID, domain.ErrForbidden)
	}
	entries, err := uc.history.ListByProduct(ctx, ownerID, productID, limit)
	if err != nil {
		return nil, nil, err
	}
	return product, entries, nil
}
