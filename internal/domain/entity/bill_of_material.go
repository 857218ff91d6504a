package entity

import "github.com/shopspring/decimal"

// BillOfMaterial línea de BoM: cuánto de un material consume una unidad de producto.
// El par (ProductID, MaterialID) es único.
type BillOfMaterial struct {
	ID         int64
	ProductID  int64
	MaterialID int64
	Quantity   decimal.Decimal // por unidad, > 0
}
