package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleSelect = `
	SELECT s.id, s.owner_id, s.product_id, s.store_id, s.stock_sold, s.sale_date,
	       s.total_sale_amount, s.created_at, COALESCE(p.name, ''), COALESCE(st.name, '')
	FROM sales s
	LEFT JOIN products p ON p.id = s.product_id
	LEFT JOIN stores st ON st.id = s.store_id`

// SaleRepo ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio (pool o tx).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta una venta. store_id vacío se guarda como NULL.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, owner_id, product_id, store_id, stock_sold, sale_date, total_sale_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.OwnerID, s.ProductID, nullable(s.StoreID), s.StockSold, s.SaleDate, s.TotalSaleAmount, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con nombres de producto y tienda. (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Update modifica tienda, cantidad, fecha y monto.
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE sales SET store_id = $2, stock_sold = $3, sale_date = $4, total_sale_amount = $5
		WHERE id = $1`,
		s.ID, nullable(s.StoreID), s.StockSold, s.SaleDate, s.TotalSaleAmount,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ListByOwner ventas del dueño, más recientes primero.
func (r *SaleRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE s.owner_id = $1 ORDER BY s.created_at DESC`, ownerID)
}

// ListByProduct ventas de un producto.
func (r *SaleRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Sale, error) {
	return r.list(ctx, saleSelect+` WHERE s.product_id = $1 ORDER BY s.created_at DESC`, productID)
}

// DeleteByProduct elimina todas las ventas de un producto.
func (r *SaleRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete sales by product: %w", err)
	}
	return nil
}

// SumAmount total del periodo; COALESCE asegura 0 sin filas.
func (r *SaleRepo) SumAmount(ctx context.Context, ownerID string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_sale_amount), 0)
		FROM sales
		WHERE owner_id = $1 AND sale_date BETWEEN $2::date AND $3::date`,
		ownerID, from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}

// MonthlyAmounts agrupa por mes de sale_date sobre todos los años.
func (r *SaleRepo) MonthlyAmounts(ctx context.Context, ownerID string) ([]inventory.MonthlyAmount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT EXTRACT(MONTH FROM sale_date)::int AS month, SUM(total_sale_amount)
		FROM sales
		WHERE owner_id = $1
		GROUP BY 1
		ORDER BY 1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()
	out := make([]inventory.MonthlyAmount, 0, 12)
	for rows.Next() {
		var m inventory.MonthlyAmount
		if err := rows.Scan(&m.Month, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan monthly sales: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SaleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row scanner) (*entity.Sale, error) {
	var (
		s       entity.Sale
		storeID *string
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.ProductID, &storeID, &s.StockSold, &s.SaleDate,
		&s.TotalSaleAmount, &s.CreatedAt, &s.ProductName, &s.StoreName); err != nil {
		return nil, err
	}
	s.StoreID = deref(storeID)
	return &s, nil
}
