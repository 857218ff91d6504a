package entity

import (
	"github.com/shopspring/decimal"
)

// Material insumo consumido por la producción (tela, cremalleras, hilo...).
// Quantity nunca queda negativa tras una deducción.
type Material struct {
	ID           int64
	Name         string // único
	Description  string
	Quantity     decimal.Decimal
	Unit         string // yards, meters, pcs...
	ReorderPoint decimal.Decimal
}

// IsLowStock indica si el material está por debajo de su punto de reorden.
func (m *Material) IsLowStock() bool {
	return m.Quantity.LessThan(m.ReorderPoint)
}
