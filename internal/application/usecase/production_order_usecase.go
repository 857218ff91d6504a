package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

// ProductionOrderUseCase ciclo de vida de las órdenes de producción. Cada cambio de estado
// se registra en el audit log dentro de la misma transacción.
type ProductionOrderUseCase struct {
	txRunner  inventory.TxRunner
	orders    repository.ProductionOrderRepository
	auditLogs repository.ProductionAuditLogRepository
	now       func() time.Time
}

// NewProductionOrderUseCase construye el caso de uso.
func NewProductionOrderUseCase(
	txRunner inventory.TxRunner,
	orders repository.ProductionOrderRepository,
	auditLogs repository.ProductionAuditLogRepository,
) *ProductionOrderUseCase {
	return &ProductionOrderUseCase{txRunner: txRunner, orders: orders, auditLogs: auditLogs, now: time.Now}
}

// Create crea la orden en estado planned y registra "created".
func (uc *ProductionOrderUseCase) Create(ctx context.Context, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if in.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch_size debe ser mayor que cero", domain.ErrInvalidInput)
	}
	now := uc.now()
	order := &entity.ProductionOrder{
		ProductID: in.ProductID,
		BatchSize: in.BatchSize,
		Status:    entity.ProductionStatusPlanned,
		Note:      in.Note,
		CreatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		if err := repos.Orders.Create(ctx, order); err != nil {
			return err
		}
		return repos.AuditLogs.Create(ctx, &entity.ProductionAuditLog{
			ProductionOrderID: order.ID,
			Action:            entity.AuditActionCreated,
			Note:              fmt.Sprintf("Order created for batch of size %d", order.BatchSize),
			Timestamp:         now,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToProductionOrderResponse(order), nil
}

// List devuelve las órdenes más recientes primero.
func (uc *ProductionOrderUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductionOrderResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToProductionOrderResponse(o))
	}
	return out, nil
}

// Get obtiene una orden; ErrNotFound si no existe.
func (uc *ProductionOrderUseCase) Get(ctx context.Context, id int64) (*dto.ProductionOrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductionOrderResponse(order), nil
}

// Delete elimina la orden junto con su audit log; las filas del libro quedan sin vínculo.
func (uc *ProductionOrderUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		return repos.Orders.Delete(ctx, id)
	})
}

// UpdateStatus fija el estado sin restricción de transición. Solo complete estampa completed_at.
func (uc *ProductionOrderUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.ProductionOrderResponse, error) {
	next, err := entity.ParseProductionStatus(status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	now := uc.now()
	var order *entity.ProductionOrder
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.TxRepos) error {
		o, err := repos.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		order = o
		prev := order.Status
		order.SetStatus(next, now)
		if err := repos.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}
		return repos.AuditLogs.Create(ctx, &entity.ProductionAuditLog{
			ProductionOrderID: order.ID,
			Action:            entity.AuditActionStatusChanged,
			Note:              fmt.Sprintf("Status changed from %s to %s", prev, next),
			Timestamp:         now,
		})
	})
	if err != nil {
		return nil, err
	}
	return ToProductionOrderResponse(order), nil
}

// ListAudit devuelve el audit log de la orden, más reciente primero. ErrNotFound si está vacío.
func (uc *ProductionOrderUseCase) ListAudit(ctx context.Context, id int64) ([]dto.AuditLogResponse, error) {
	list, err := uc.auditLogs.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: la orden %d no tiene registros de auditoría", domain.ErrNotFound, id)
	}
	out := make([]dto.AuditLogResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AuditLogResponse{
			ID:                a.ID,
			ProductionOrderID: a.ProductionOrderID,
			Action:            a.Action,
			Note:              a.Note,
			Timestamp:         a.Timestamp,
		})
	}
	return out, nil
}

// ToProductionOrderResponse convierte la entidad a su DTO.
func ToProductionOrderResponse(o *entity.ProductionOrder) *dto.ProductionOrderResponse {
	if o == nil {
		return nil
	}
	return &dto.ProductionOrderResponse{
		ID:          o.ID,
		ProductID:   o.ProductID,
		BatchSize:   o.BatchSize,
		Status:      string(o.Status),
		Note:        o.Note,
		CreatedAt:   o.CreatedAt,
		CompletedAt: o.CompletedAt,
	}
}
