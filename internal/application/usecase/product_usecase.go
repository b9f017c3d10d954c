package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// ProductUseCase casos de uso de productos. El stock solo cambia a través del mutador.
type ProductUseCase struct {
	products repository.ProductRepository
	tx       inventory.TxRunner
	mutator  *inventory.StockMutator
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, tx inventory.TxRunner, mutator *inventory.StockMutator) *ProductUseCase {
	return &ProductUseCase{products: products, tx: tx, mutator: mutator, now: time.Now}
}

// Create crea un producto. Un stock inicial distinto de cero queda en el libro como add/correction.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Manufacturer) == "" {
		return nil, fmt.Errorf("nombre y fabricante requeridos: %w", domain.ErrInvalidInput)
	}
	if in.Stock < 0 || in.Price.IsNegative() {
		return nil, fmt.Errorf("stock y precio deben ser >= 0: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         name,
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Price:        in.Price,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var initial *inventory.AdjustmentResult
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.Stock == 0 {
			return nil
		}
		var err error
		initial, err = uc.mutator.ApplyInTx(ctx, repos, inventory.AdjustmentInput{
			ProductID: product.ID,
			Type:      entity.StockTypeAdd,
			Quantity:  in.Stock,
			Reason:    entity.StockReasonCorrection,
			Notes:     "stock inicial",
			ActorID:   ownerID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if initial != nil {
		uc.mutator.AfterCommit(ctx, initial)
		product = initial.Product
	}
	out := inventory.ToProductResponse(product)
	return &out, nil
}

// Get obtiene un producto del dueño.
func (uc *ProductUseCase) Get(ctx context.Context, ownerID, id string) (*dto.ProductResponse, error) {
	p, err := uc.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	out := inventory.ToProductResponse(p)
	return &out, nil
}

// List lista los productos del dueño, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context, ownerID string) ([]dto.ProductResponse, error) {
	list, err := uc.products.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return inventory.ToProductResponses(list), nil
}

// Search busca por nombre sin distinguir mayúsculas ni tildes.
func (uc *ProductUseCase) Search(ctx context.Context, ownerID, term string) ([]dto.ProductResponse, error) {
	list, err := uc.products.Search(ctx, ownerID, domaininv.FoldName(term))
	if err != nil {
		return nil, err
	}
	return inventory.ToProductResponses(list), nil
}

// Update modifica nombre, fabricante, descripción y precio. Nunca stock.
func (uc *ProductUseCase) Update(ctx context.Context, ownerID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.owned(ctx, ownerID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("nombre vacío: %w", domain.ErrInvalidInput)
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Manufacturer != nil {
		p.Manufacturer = strings.TrimSpace(*in.Manufacturer)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("precio negativo: %w", domain.ErrInvalidInput)
		}
		p.Price = *in.Price
	}
	p.UpdatedAt = uc.now()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	out := inventory.ToProductResponse(p)
	return &out, nil
}

// Delete elimina el producto junto con sus compras y ventas. El libro de stock se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		p, err := repos.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		if p.OwnerID != ownerID {
			return fmt.Errorf("producto %s: %w", id, domain.ErrForbidden)
		}
		if err := repos.Purchases.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		if err := repos.Sales.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		return repos.Products.Delete(ctx, id)
	})
}

func (uc *ProductUseCase) owned(ctx context.Context, ownerID, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if p.OwnerID != ownerID {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrForbidden)
	}
	return p, nil
}
