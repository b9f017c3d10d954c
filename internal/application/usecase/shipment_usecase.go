package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// ShipmentUseCase CRUD de envíos, siempre acotado al dueño.
type ShipmentUseCase struct {
	repo repository.ShipmentRepository
	now  func() time.Time
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(repo repository.ShipmentRepository) *ShipmentUseCase {
	return &ShipmentUseCase{repo: repo, now: time.Now}
}

// Create registra un envío. container_id duplicado devuelve ErrDuplicate.
func (uc *ShipmentUseCase) Create(ctx context.Context, ownerID string, in dto.ShipmentRequest) (*dto.ShipmentResponse, error) {
	now := uc.now()
	sh := &entity.Shipment{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		CreatedAt: now,
	}
	if err := uc.apply(sh, in); err != nil {
		return nil, err
	}
	sh.UpdatedAt = now
	if err := uc.repo.Create(ctx, sh); err != nil {
		return nil, err
	}
	out := toShipmentResponse(sh)
	return &out, nil
}

// List lista los envíos del dueño, más recientes primero.
func (uc *ShipmentUseCase) List(ctx context.Context, ownerID string) ([]dto.ShipmentResponse, error) {
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentResponse, 0, len(list))
	for _, sh := range list {
		out = append(out, toShipmentResponse(sh))
	}
	return out, nil
}

// Get obtiene un envío del dueño.
func (uc *ShipmentUseCase) Get(ctx context.Context, ownerID, id string) (*dto.ShipmentResponse, error) {
	sh, err := uc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	out := toShipmentResponse(sh)
	return &out, nil
}

// Update reemplaza los datos del envío.
func (uc *ShipmentUseCase) Update(ctx context.Context, ownerID, id string, in dto.ShipmentRequest) (*dto.ShipmentResponse, error) {
	sh, err := uc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = sh.Status
	}
	if err := uc.apply(sh, in); err != nil {
		return nil, err
	}
	sh.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, sh); err != nil {
		return nil, err
	}
	out := toShipmentResponse(sh)
	return &out, nil
}

// Delete elimina un envío del dueño.
func (uc *ShipmentUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ShipmentUseCase) apply(sh *entity.Shipment, in dto.ShipmentRequest) error {
	if strings.TrimSpace(in.ContainerID) == "" || strings.TrimSpace(in.TrackingURL) == "" {
		return fmt.Errorf("containerId y trackingUrl requeridos: %w", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.ShipmentStatusInTransit
	}
	if !entity.ValidShipmentStatus(status) {
		return fmt.Errorf("estado %q: %w", status, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.ExpectedDeliveryDate) == "" {
		return fmt.Errorf("expectedDeliveryDate requerido: %w", domain.ErrInvalidInput)
	}
	expected, err := domaininv.ParseBusinessDate(in.ExpectedDeliveryDate, uc.now())
	if err != nil {
		return err
	}
	items := make([]entity.ShipmentItem, 0, len(in.Items))
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 1 {
			return fmt.Errorf("ítem %q: %w", it.Name, domain.ErrInvalidInput)
		}
		items = append(items, entity.ShipmentItem{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity})
	}

	sh.ContainerID = strings.TrimSpace(in.ContainerID)
	sh.TrackingURL = strings.TrimSpace(in.TrackingURL)
	sh.ExpectedDeliveryDate = expected
	sh.Status = status
	sh.Description = in.Description
	sh.Items = items
	return nil
}

func (uc *ShipmentUseCase) owned(ctx context.Context, ownerID, id string) (*entity.Shipment, error) {
	sh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, fmt.Errorf("envío %s: %w", id, domain.ErrNotFound)
	}
	if sh.OwnerID != ownerID {
		return nil, fmt.Errorf("envío %s: %w", id, domain.ErrForbidden)
	}
	return sh, nil
}

func toShipmentResponse(sh *entity.Shipment) dto.ShipmentResponse {
	items := make([]dto.ShipmentItemDTO, 0, len(sh.Items))
	for _, it := range sh.Items {
		items = append(items, dto.ShipmentItemDTO{Name: it.Name, Quantity: it.Quantity})
	}
	return dto.ShipmentResponse{
		ID:                   sh.ID,
		UserID:               sh.OwnerID,
		ContainerID:          sh.ContainerID,
		TrackingURL:          sh.TrackingURL,
		ExpectedDeliveryDate: sh.ExpectedDeliveryDate.Format(dto.DateLayout),
		Status:               sh.Status,
		Description:          sh.Description,
		Items:                items,
		CreatedAt:            sh.CreatedAt,
		UpdatedAt:            sh.UpdatedAt,
	}
}
