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

// SaleUseCase registra ventas; cada una descuenta stock vía libro (remove/sale) en la misma transacción.
type SaleUseCase struct {
	sales   repository.SaleRepository
	stores  repository.StoreRepository
	tx      inventory.TxRunner
	mutator *inventory.StockMutator
	now     func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(sales repository.SaleRepository, stores repository.StoreRepository, tx inventory.TxRunner, mutator *inventory.StockMutator) *SaleUseCase {
	return &SaleUseCase{sales: sales, stores: stores, tx: tx, mutator: mutator, now: time.Now}
}

// Create inserta la venta y descuenta el stock. Sin stock suficiente no se escribe nada.
func (uc *SaleUseCase) Create(ctx context.Context, ownerID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.StockSold <= 0 || in.TotalSaleAmount.IsNegative() {
		return nil, fmt.Errorf("cantidad > 0 y monto >= 0: %w", domain.ErrInvalidInput)
	}
	now := uc.now()
	date, err := domaininv.ParseBusinessDate(in.SaleDate, now)
	if err != nil {
		return nil, err
	}
	store, err := uc.ownedStore(ctx, ownerID, in.StoreID)
	if err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		ProductID:       in.ProductID,
		StoreID:         in.StoreID,
		StockSold:       in.StockSold,
		SaleDate:        date,
		TotalSaleAmount: in.TotalSaleAmount,
		CreatedAt:       now,
	}

	var res *inventory.AdjustmentResult
	err = uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		var err error
		res, err = uc.mutator.ApplyInTx(ctx, repos, inventory.AdjustmentInput{
			ProductID: sale.ProductID,
			Type:      entity.StockTypeRemove,
			Quantity:  sale.StockSold,
			Reason:    entity.StockReasonSale,
			ActorID:   ownerID,
			SourceID:  sale.ID,
		})
		if err != nil {
			return err
		}
		return repos.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	uc.mutator.AfterCommit(ctx, res)
	sale.ProductName = res.Product.Name
	if store != nil {
		sale.StoreName = store.Name
	}
	out := toSaleResponse(sale)
	return &out, nil
}

// List lista las ventas del dueño con nombre de producto y tienda.
func (uc *SaleUseCase) List(ctx context.Context, ownerID string) ([]dto.SaleResponse, error) {
	list, err := uc.sales.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// Update modifica la venta; la diferencia de cantidad pasa por el libro.
func (uc *SaleUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.StoreID != nil {
		if _, err := uc.ownedStore(ctx, ownerID, *in.StoreID); err != nil {
			return nil, err
		}
	}
	var (
		updated *entity.Sale
		res     *inventory.AdjustmentResult
	)
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		s, err := ownedSale(ctx, repos.Sales, ownerID, id)
		if err != nil {
			return err
		}
		if in.ProductID != "" && in.ProductID != s.ProductID {
			return fmt.Errorf("no se puede cambiar el producto de una venta: %w", domain.ErrInvalidInput)
		}
		if in.StoreID != nil {
			s.StoreID = *in.StoreID
		}
		if in.SaleDate != nil {
			d, err := domaininv.ParseBusinessDate(*in.SaleDate, uc.now())
			if err != nil {
				return err
			}
			s.SaleDate = d
		}
		if in.TotalSaleAmount != nil {
			if in.TotalSaleAmount.IsNegative() {
				return fmt.Errorf("monto negativo: %w", domain.ErrInvalidInput)
			}
			s.TotalSaleAmount = *in.TotalSaleAmount
		}
		if in.StockSold != nil {
			if typ, reason, qty, ok := domaininv.Compensation(entity.StockTypeRemove, s.StockSold, *in.StockSold); ok {
				res, err = uc.mutator.ApplyInTx(ctx, repos, inventory.AdjustmentInput{
					ProductID: s.ProductID,
					Type:      typ,
					Quantity:  qty,
					Reason:    reason,
					Notes:     "venta actualizada",
					ActorID:   ownerID,
					SourceID:  s.ID,
				})
				if err != nil {
					return err
				}
			}
			s.StockSold = *in.StockSold
		}
		if err := repos.Sales.Update(ctx, s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.mutator.AfterCommit(ctx, res)
	out := toSaleResponse(updated)
	return &out, nil
}

// Delete elimina la venta y devuelve su cantidad al stock (add/correction).
func (uc *SaleUseCase) Delete(ctx context.Context, ownerID, id string) error {
	var res *inventory.AdjustmentResult
	err := uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		s, err := ownedSale(ctx, repos.Sales, ownerID, id)
		if err != nil {
			return err
		}
		res, err = uc.mutator.ApplyInTx(ctx, repos, inventory.AdjustmentInput{
			ProductID: s.ProductID,
			Type:      entity.StockTypeAdd,
			Quantity:  s.StockSold,
			Reason:    entity.StockReasonCorrection,
			Notes:     "venta eliminada",
			ActorID:   ownerID,
			SourceID:  s.ID,
		})
		if err != nil {
			return err
		}
		return repos.Sales.Delete(ctx, s.ID)
	})
	if err != nil {
		return err
	}
	uc.mutator.AfterCommit(ctx, res)
	return nil
}

// ownedStore valida la tienda opcional de una venta. storeID vacío devuelve (nil, nil).
func (uc *SaleUseCase) ownedStore(ctx context.Context, ownerID, storeID string) (*entity.Store, error) {
	if storeID == "" {
		return nil, nil
	}
	st, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("tienda %s: %w", storeID, domain.ErrNotFound)
	}
	if st.OwnerID != ownerID {
		return nil, fmt.Errorf("tienda %s: %w", storeID, domain.ErrForbidden)
	}
	return st, nil
}

func ownedSale(ctx context.Context, repo repository.SaleRepository, ownerID, id string) (*entity.Sale, error) {
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	if s.OwnerID != ownerID {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrForbidden)
	}
	return s, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:              s.ID,
		UserID:          s.OwnerID,
		ProductID:       s.ProductID,
		ProductName:     s.ProductName,
		StoreID:         s.StoreID,
		StoreName:       s.StoreName,
		StockSold:       s.StockSold,
		SaleDate:        s.SaleDate.Format(dto.DateLayout),
		TotalSaleAmount: s.TotalSaleAmount,
		CreatedAt:       s.CreatedAt,
	}
}
