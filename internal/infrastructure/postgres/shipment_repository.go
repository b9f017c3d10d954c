package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, owner_id, container_id, tracking_url, expected_delivery_date, status, description, items, created_at, updated_at`

// ShipmentRepo envíos sobre PostgreSQL; items se guarda como JSONB.
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el repositorio.
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	items, err := json.Marshal(itemsOrEmpty(s.Items))
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO shipments (`+shipmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.OwnerID, s.ContainerID, s.TrackingURL, s.ExpectedDeliveryDate, s.Status, s.Description,
		items, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	s, err := scanShipment(r.q.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return s, nil
}

func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	items, err := json.Marshal(itemsOrEmpty(s.Items))
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE shipments SET container_id = $2, tracking_url = $3, expected_delivery_date = $4, status = $5,
		       description = $6, items = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.ContainerID, s.TrackingURL, s.ExpectedDeliveryDate, s.Status, s.Description, items, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update shipment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShipmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	return nil
}

func (r *ShipmentRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Shipment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Shipment, 0)
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanShipment(row scanner) (*entity.Shipment, error) {
	var (
		s     entity.Shipment
		items []byte
	)
	if err := row.Scan(&s.ID, &s.OwnerID, &s.ContainerID, &s.TrackingURL, &s.ExpectedDeliveryDate, &s.Status,
		&s.Description, &items, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &s, nil
}

func itemsOrEmpty(items []entity.ShipmentItem) []entity.ShipmentItem {
	if items == nil {
		return []entity.ShipmentItem{}
	}
	return items
}
