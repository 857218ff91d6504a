package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

var (
	_ repository.ProductionOrderRepository    = (*ProductionOrderRepo)(nil)
	_ repository.ProductionAuditLogRepository = (*AuditLogRepo)(nil)
)

const orderColumns = `id, product_id, batch_size, status, note, created_at, completed_at`

// ProductionOrderRepo implementación de ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador de órdenes.
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

func (r *ProductionOrderRepo) Create(ctx context.Context, o *entity.ProductionOrder) error {
	query := `
		INSERT INTO production_orders (product_id, batch_size, status, note, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, o.ProductID, o.BatchSize, string(o.Status), o.Note, o.CreatedAt).Scan(&o.ID)
	if err != nil {
		return wrap("create production order", err)
	}
	return nil
}

func (r *ProductionOrderRepo) GetByID(ctx context.Context, id int64) (*entity.ProductionOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM production_orders WHERE id = $1`, id)
}

func (r *ProductionOrderRepo) GetForUpdate(ctx context.Context, id int64) (*entity.ProductionOrder, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM production_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductionOrderRepo) get(ctx context.Context, query string, id int64) (*entity.ProductionOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return o, nil
}

func (r *ProductionOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *ProductionOrderRepo) UpdateStatus(ctx context.Context, o *entity.ProductionOrder) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE production_orders SET status = $2, completed_at = $3 WHERE id = $1`,
		o.ID, string(o.Status), o.CompletedAt,
	)
	if err != nil {
		return wrap("update production order status", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update production order status %d: %w", o.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete borra la orden; el esquema elimina su audit log (CASCADE) y desvincula el libro (SET NULL).
func (r *ProductionOrderRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM production_orders WHERE id = $1`, id)
	if err != nil {
		return wrap("delete production order", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete production order %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.ProductionOrder, error) {
	var (
		o      entity.ProductionOrder
		status string
	)
	if err := row.Scan(&o.ID, &o.ProductID, &o.BatchSize, &status, &o.Note, &o.CreatedAt, &o.CompletedAt); err != nil {
		return nil, err
	}
	s, err := entity.ParseProductionStatus(status)
	if err != nil {
		return nil, err
	}
	o.Status = s
	return &o, nil
}

// AuditLogRepo implementación de ProductionAuditLogRepository (solo inserción y lectura).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador del audit log.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

func (r *AuditLogRepo) Create(ctx context.Context, a *entity.ProductionAuditLog) error {
	query := `
		INSERT INTO production_audit_logs (production_order_id, action, note, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, a.ProductionOrderID, a.Action, a.Note, a.Timestamp).Scan(&a.ID); err != nil {
		return wrap("create audit log", err)
	}
	return nil
}

func (r *AuditLogRepo) ListByOrder(ctx context.Context, orderID int64) ([]*entity.ProductionAuditLog, error) {
	query := `
		SELECT id, production_order_id, action, note, timestamp
		FROM production_audit_logs
		WHERE production_order_id = $1
		ORDER BY timestamp DESC, id DESC`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionAuditLog
	for rows.Next() {
		var a entity.ProductionAuditLog
		if err := rows.Scan(&a.ID, &a.ProductionOrderID, &a.Action, &a.Note, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
