package repository

import (
	"context"

	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// BillOfMaterialRepository puerto para las líneas de BoM.
type BillOfMaterialRepository interface {
	Create(ctx context.Context, bom *entity.BillOfMaterial) error
	// ListByProduct devuelve las líneas de un producto ordenadas por ID.
	ListByProduct(ctx context.Context, productID int64) ([]*entity.BillOfMaterial, error)
	// List devuelve todas las líneas, o solo las de productID si no es nil.
	List(ctx context.Context, productID *int64) ([]*entity.BillOfMaterial, error)
}
