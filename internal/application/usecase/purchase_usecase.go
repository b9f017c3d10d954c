package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// PurchaseUseCase registra compras; cada una suma stock vía libro en la misma transacción.
type PurchaseUseCase struct {
	purchases repository.PurchaseRepository
	tx        inventory.TxRunner
	mutator   *inventory.StockMutator
	now       func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(purchases repository.PurchaseRepository, tx inventory.TxRunner, mutator *inventory.StockMutator) *PurchaseUseCase {
	return &PurchaseUseCase{purchases: purchases, tx: tx, mutator: mutator, now: time.Now}
}

// Create inserta la compra y aplica add/purchase al producto.
func (uc *PurchaseUseCase) Create(ctx context.Context, ownerID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.QuantityPurchased <= 0 || in.TotalPurchaseAmount.IsNegative() {
		return nil, fmt.Errorf("cantidad > 0 y monto >= 0: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	date, err := domaininv.ParseBusinessDate(in.PurchaseDate, now)
	if err != nil {
		return nil, err
	}
	purchase := &entity.Purchase{
		ID:                  uuid.New().String(),
		OwnerID:             ownerID,
		ProductID:           in.ProductID,
		QuantityPurchased:   in.QuantityPurchased,
		PurchaseDate:        date,
		TotalPurchaseAmount: in.TotalPurchaseAmount,
		CreatedAt:           now,
	}

	var res *inventory.AdjustmentResult
	err = uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		res, err = uc.mutator.ApplyInTx(ctx, repos, inventory.AdjustmentInput{
			ProductID: purchase.ProductID,
			Type:      entity.StockTypeAdd,
			Quantity:  purchase.QuantityPurchased,
			Reason:    entity.StockReasonPurchase,
			ActorID:   ownerID,
			SourceID:  purchase.ID,
		})
		if err != nil {
			return err
		}
		return repos.Purchases.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}
	uc.mutator.AfterCommit(ctx, res)
	purchase.ProductName = res.Product.Name
	out := toPurchaseResponse(purchase)
	return &out, nil
}

// List lista las compras del dueño, más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, ownerID string) ([]dto.PurchaseResponse, error) {
	list, err := uc.purchases.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return out, nil
}

// Update modifica la compra; la diferencia de cantidad pasa por el libro.
// El producto de una compra no puede cambiar.
func (uc *PurchaseUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	var (
		updated *entity.Purchase
		res     *inventory.AdjustmentResult
	)
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		p, err := ownedPurchase(ctx, repos.Purchases, ownerID, id)
		if err != nil {
			return err
		}
		if in.ProductID != "" && in.ProductID != p.ProductID {
			return fmt.Errorf("no se puede cambiar el producto de una compra: %w", domain.ErrInvalidInput)
		}
		if in.PurchaseDate != nil {
			d, err := domaininv.ParseBusinessDate(*in.PurchaseDate, uc.now())
			if err != nil {
				return err
			}
			p.PurchaseDate = d
		}
		if in.TotalPurchaseAmount != nil {
			if in.TotalPurchaseAmount.IsNegative() {
				return fmt.Errorf("monto negativo: %w", domain.ErrInvalidInput)
			}
			p.TotalPurchaseAmount = *in.TotalPurchaseAmount
		}
		if in.QuantityPurchased != nil {
			if typ, reason, qty, ok := domaininv.Compensation(entity.StockTypeAdd, p.QuantityPurchased, *in.QuantityPurchased); ok {
				res, err = uc.mutator.ApplyInTx(ctx, repos, inventory.AdjustmentInput{
					ProductID: p.ProductID,
					Type:      typ,
					Quantity:  qty,
					Reason:    reason,
					Notes:     "compra actualizada",
					ActorID:   ownerID,
					SourceID:  p.ID,
				})
				if err != nil {
					return err
				}
			}
			p.QuantityPurchased = *in.QuantityPurchased
		}
		if err := repos.Purchases.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.mutator.AfterCommit(ctx, res)
	out := toPurchaseResponse(updated)
	return &out, nil
}

// Delete elimina la compra y revierte su cantidad (remove/correction).
// Falla con ErrInsufficientStock si el stock actual ya no cubre la reversión.
func (uc *PurchaseUseCase) Delete(ctx context.Context, ownerID, id string) error {
	var res *inventory.AdjustmentResult
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		p, err := ownedPurchase(ctx, repos.Purchases, ownerID, id)
		if err != nil {
			return err
		}
		res, err = uc.mutator.ApplyInTx(ctx, repos, inventory.AdjustmentInput{
			ProductID: p.ProductID,
			Type:      entity.StockTypeRemove,
			Quantity:  p.QuantityPurchased,
			Reason:    entity.StockReasonCorrection,
			Notes:     "compra eliminada",
			ActorID:   ownerID,
			SourceID:  p.ID,
		})
		if err != nil {
			return err
		}
		return repos.Purchases.Delete(ctx, p.ID)
	})
	if err != nil {
		return err
	}
	uc.mutator.AfterCommit(ctx, res)
	return nil
}

func ownedPurchase(ctx context.Context, repo repository.PurchaseRepository, ownerID, id string) (*entity.Purchase, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("compra %s: %w", id, domain.ErrNotFound)
	}
	if p.OwnerID != ownerID {
		return nil, fmt.Errorf("compra %s: %w", id, domain.ErrForbidden)
	}
	return p, nil
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:                  p.ID,
		UserID:              p.OwnerID,
		ProductID:           p.ProductID,
		ProductName:         p.ProductName,
		QuantityPurchased:   p.QuantityPurchased,
		PurchaseDate:        p.PurchaseDate.Format(dto.DateLayout),
		TotalPurchaseAmount: p.TotalPurchaseAmount,
		CreatedAt:           p.CreatedAt,
	}
}
