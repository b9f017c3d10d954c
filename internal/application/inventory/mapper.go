package inventory

import (
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ToProductResponse convierte la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		UserID:       p.OwnerID,
		Name:         p.Name,
		Manufacturer: p.Manufacturer,
		Stock:        p.Stock,
		Price:        p.Price,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses convierte una lista; nunca devuelve nil (JSON []).
func ToProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ToStockHistoryResponse convierte una entrada del libro. product puede ser nil (producto eliminado).
func ToStockHistoryResponse(h *entity.StockHistory, product *entity.Product) dto.StockHistoryResponse {
	out := dto.StockHistoryResponse{
		ID:        h.ID,
		ProductID: h.ProductID,
		UserID:    h.OwnerID,
		Type:      h.Type,
		Quantity:  h.Quantity,
		Reason:    h.Reason,
		Notes:     h.Notes,
		SourceID:  h.SourceID,
		Date:      h.Date,
	}
	if product != nil {
		out.Product = &dto.ProductSummary{Name: product.Name, Manufacturer: product.Manufacturer}
	}
	return out
}
