package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseSelect = `
	SELECT pu.id, pu.owner_id, pu.product_id, pu.quantity_purchased, pu.purchase_date,
	       pu.total_purchase_amount, pu.created_at, COALESCE(p.name, '')
	FROM purchases pu
	LEFT JOIN products p ON p.id = pu.product_id`

// PurchaseRepo compras sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el repositorio (pool o tx).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta una compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, owner_id, product_id, quantity_purchased, purchase_date, total_purchase_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OwnerID, p.ProductID, p.QuantityPurchased, p.PurchaseDate, p.TotalPurchaseAmount, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra con el nombre del producto. (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, purchaseSelect+` WHERE pu.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// Update modifica cantidad, fecha y monto. El producto no cambia.
func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchases SET quantity_purchased = $2, purchase_date = $3, total_purchase_amount = $4
		WHERE id = $1`,
		p.ID, p.QuantityPurchased, p.PurchaseDate, p.TotalPurchaseAmount,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una compra por ID.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// ListByOwner compras del dueño, más recientes primero.
func (r *PurchaseRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Purchase, error) {
	return r.list(ctx, purchaseSelect+` WHERE pu.owner_id = $1 ORDER BY pu.created_at DESC`, ownerID)
}

// ListByProduct compras de un producto.
func (r *PurchaseRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Purchase, error) {
	return r.list(ctx, purchaseSelect+` WHERE pu.product_id = $1 ORDER BY pu.created_at DESC`, productID)
}

// DeleteByProduct elimina todas las compras de un producto (borrado en cascada explícito).
func (r *PurchaseRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete purchases by product: %w", err)
	}
	return nil
}

// SumAmount total del periodo; COALESCE asegura 0 sin filas.
func (r *PurchaseRepo) SumAmount(ctx context.Context, ownerID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_purchase_amount), 0)
		FROM purchases
		WHERE owner_id = $1 AND purchase_date BETWEEN $2::date AND $3::date`,
		ownerID, from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum purchases: %w", err)
	}
	return total, nil
}

func (r *PurchaseRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Purchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPurchase(row scanner) (*entity.Purchase, error) {
	var p entity.Purchase
	if err := row.Scan(&p.ID, &p.OwnerID, &p.ProductID, &p.QuantityPurchased, &p.PurchaseDate,
		&p.TotalPurchaseAmount, &p.CreatedAt, &p.ProductName); err != nil {
		return nil, err
	}
	return &p, nil
}
