package repository

import (
	"context"

	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// ProductionOrderRepository puerto de persistencia para órdenes de producción.
type ProductionOrderRepository interface {
	Create(ctx context.Context, order *entity.ProductionOrder) error
	GetByID(ctx context.Context, id int64) (*entity.ProductionOrder, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.ProductionOrder, error)
	// List devuelve las órdenes más recientes primero.
	List(ctx context.Context, limit, offset int) ([]*entity.ProductionOrder, error)
	UpdateStatus(ctx context.Context, order *entity.ProductionOrder) error
	Delete(ctx context.Context, id int64) error
}

// ProductionAuditLogRepository puerto del audit log de producción (solo inserción y lectura).
type ProductionAuditLogRepository interface {
	Create(ctx context.Context, log *entity.ProductionAuditLog) error
	// ListByOrder devuelve las entradas más recientes primero.
	ListByOrder(ctx context.Context, orderID int64) ([]*entity.ProductionAuditLog, error)
}
