package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo implementación del libro de inventario (solo INSERT y SELECT).
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

func (r *InventoryLogRepo) Create(ctx context.Context, l *entity.InventoryChangeLog) error {
	query := `
		INSERT INTO inventory_logs (transaction_id, material_id, production_order_id, change_type, quantity, remaining, note, timestamp)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		l.TransactionID, l.MaterialID, l.ProductionOrderID, string(l.ChangeType),
		l.Quantity, l.Remaining, l.Note, l.Timestamp,
	).Scan(&l.ID)
	if err != nil {
		return wrap("create inventory log", err)
	}
	return nil
}

// List arma el WHERE solo con los filtros presentes; más recientes primero.
func (r *InventoryLogRepo) List(ctx context.Context, f entity.InventoryLogFilter) ([]*entity.InventoryChangeLog, error) {
	var (
		where []string
		args  []any
	)
	if f.MaterialID != nil {
		args = append(args, *f.MaterialID)
		where = append(where, fmt.Sprintf("material_id = $%d", len(args)))
	}
	if f.ChangeType != nil {
		args = append(args, string(*f.ChangeType))
		where = append(where, fmt.Sprintf("change_type = $%d", len(args)))
	}
	query := `
		SELECT id, transaction_id::text, material_id, production_order_id, change_type, quantity, remaining, note, timestamp
		FROM inventory_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryChangeLog
	for rows.Next() {
		var (
			l          entity.InventoryChangeLog
			changeType string
		)
		if err := rows.Scan(&l.ID, &l.TransactionID, &l.MaterialID, &l.ProductionOrderID, &changeType,
			&l.Quantity, &l.Remaining, &l.Note, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		ct, err := entity.ParseChangeType(changeType)
		if err != nil {
			return nil, err
		}
		l.ChangeType = ct
		list = append(list, &l)
	}
	return list, rows.Err()
}
