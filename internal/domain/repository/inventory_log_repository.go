package repository

import (
	"context"

	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// InventoryLogRepository puerto del libro de inventario (solo inserción y lectura).
type InventoryLogRepository interface {
	Create(ctx context.Context, log *entity.InventoryChangeLog) error
	// List devuelve los registros más recientes primero.
	List(ctx context.Context, filter entity.InventoryLogFilter) ([]*entity.InventoryChangeLog, error)
}
