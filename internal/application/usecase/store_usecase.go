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
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// StoreUseCase alta y listado de tiendas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create registra una tienda del dueño.
func (uc *StoreUseCase) Create(ctx context.Context, ownerID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	st := &entity.Store{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(in.Name),
		Category:  in.Category,
		Address:   in.Address,
		City:      in.City,
		Image:     in.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	out := toStoreResponse(st)
	return &out, nil
}

// List lista las tiendas del dueño.
func (uc *StoreUseCase) List(ctx context.Context, ownerID string) ([]dto.StoreResponse, error) {
	list, err := uc.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, st := range list {
		out = append(out, toStoreResponse(st))
	}
	return out, nil
}

func toStoreResponse(st *entity.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:        st.ID,
		UserID:    st.OwnerID,
		Name:      st.Name,
		Category:  st.Category,
		Address:   st.Address,
		City:      st.City,
		Image:     st.Image,
		CreatedAt: st.CreatedAt,
	}
}
