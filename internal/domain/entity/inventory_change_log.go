package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ChangeType tipo de cambio registrado en el libro de inventario.
type ChangeType string

// Tipos de cambio de inventario (conjunto cerrado).
const (
	ChangeTypeRestock   ChangeType = "restock"   // entrada
	ChangeTypeDeduction ChangeType = "deduction" // consumo por producción
)

// ParseChangeType valida un tipo recibido desde fuera (query, DB).
func ParseChangeType(s string) (ChangeType, error) {
	switch ChangeType(s) {
	case ChangeTypeRestock, ChangeTypeDeduction:
		return ChangeType(s), nil
	}
	return "", fmt.Errorf("tipo de cambio desconocido: %q", s)
}

// InventoryChangeLog registro inmutable (append-only) de un cambio de cantidad de un Material.
// TransactionID agrupa todas las filas escritas por una misma deducción o reabastecimiento.
type InventoryChangeLog struct {
	ID                int64
	TransactionID     string
	MaterialID        int64
	ProductionOrderID *int64
	ChangeType        ChangeType
	Quantity          decimal.Decimal // siempre positivo; el signo lo da ChangeType
	Remaining         decimal.Decimal // saldo resultante del material
	Note              string
	Timestamp         time.Time
}

// InventoryLogFilter filtros para el listado del libro de inventario.
type InventoryLogFilter struct {
	MaterialID *int64
	ChangeType *ChangeType
	Limit      int
}
