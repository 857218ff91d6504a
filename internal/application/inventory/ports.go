package inventory

import (
	"context"

	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Materials     repository.MaterialRepository
	BOMs          repository.BillOfMaterialRepository
	Orders        repository.ProductionOrderRepository
	InventoryLogs repository.InventoryLogRepository
	AuditLogs     repository.ProductionAuditLogRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error (o el commit falla) no queda ningún cambio persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
