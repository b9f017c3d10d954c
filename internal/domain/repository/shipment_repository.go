package repository

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ShipmentRepository define el puerto de persistencia para Shipment.
// Create y Update devuelven domain.ErrDuplicate si container_id ya existe.
type ShipmentRepository interface {
	Create(ctx context.Context, s *entity.Shipment) error
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	Update(ctx context.Context, s *entity.Shipment) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Shipment, error)
}
