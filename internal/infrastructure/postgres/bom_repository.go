package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

var _ repository.BillOfMaterialRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BillOfMaterialRepository sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de BoM.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Create inserta la línea; el par (product_id, material_id) es UNIQUE.
func (r *BOMRepo) Create(ctx context.Context, b *entity.BillOfMaterial) error {
	query := `
		INSERT INTO bill_of_materials (product_id, material_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, b.ProductID, b.MaterialID, b.Quantity).Scan(&b.ID); err != nil {
		return wrap("create bom", err)
	}
	return nil
}

func (r *BOMRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.BillOfMaterial, error) {
	return r.List(ctx, &productID)
}

func (r *BOMRepo) List(ctx context.Context, productID *int64) ([]*entity.BillOfMaterial, error) {
	query := `
		SELECT id, product_id, material_id, quantity
		FROM bill_of_materials
		WHERE ($1::bigint IS NULL OR product_id = $1)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillOfMaterial
	for rows.Next() {
		var b entity.BillOfMaterial
		if err := rows.Scan(&b.ID, &b.ProductID, &b.MaterialID, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan bom: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
