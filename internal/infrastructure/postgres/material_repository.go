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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, name, description, quantity, unit, reorder_point`

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (name, description, quantity, unit, reorder_point)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, m.Name, m.Description, m.Quantity, m.Unit, m.ReorderPoint).Scan(&m.ID)
	if err != nil {
		return wrap("create material", err)
	}
	return nil
}

func (r *MaterialRepo) GetByID(ctx context.Context, id int64) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetForUpdate obtiene el material y bloquea la fila hasta el fin de la transacción.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Material, error) {
	return r.get(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) get(ctx context.Context, query string, id int64) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

func (r *MaterialRepo) UpdateQuantity(ctx context.Context, m *entity.Material) error {
	tag, err := r.q.Exec(ctx, `UPDATE materials SET quantity = $2 WHERE id = $1`, m.ID, m.Quantity)
	if err != nil {
		return wrap("update material quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update material quantity %d: %w", m.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *MaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.Material, error) {
	return r.list(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *MaterialRepo) ListLowStock(ctx context.Context) ([]*entity.Material, error) {
	return r.list(ctx, `SELECT `+materialColumns+` FROM materials WHERE quantity < reorder_point ORDER BY id`)
}

func (r *MaterialRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Quantity, &m.Unit, &m.ReorderPoint); err != nil {
		return nil, err
	}
	return &m, nil
}
