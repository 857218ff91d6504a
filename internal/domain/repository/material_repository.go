package repository

import (
	"context"

	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para Material.
// GetByID/GetForUpdate devuelven (nil, nil) si no existe.
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id int64) (*entity.Material, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Material, error)
	UpdateQuantity(ctx context.Context, material *entity.Material) error
	List(ctx context.Context, limit, offset int) ([]*entity.Material, error)
	ListLowStock(ctx context.Context) ([]*entity.Material, error)
}
