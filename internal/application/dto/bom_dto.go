package dto

import "github.com/shopspring/decimal"

// CreateBOMRequest entrada para crear una línea de BoM.
type CreateBOMRequest struct {
	ProductID  int64           `json:"product_id"`
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// BOMResponse salida de una línea de BoM.
type BOMResponse struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CalculateQuery parámetros de GET /bom/calculate/. BatchSize por defecto 1.
type CalculateQuery struct {
	ProductID         int64  `query:"product_id"`
	BatchSize         *int64 `query:"batch_size"`
	CheckAvailability bool   `query:"check_availability"`
}

// MaterialRequirementDTO requerido vs disponible de un material para el lote.
type MaterialRequirementDTO struct {
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
	Unit      string          `json:"unit"`
	Status    string          `json:"status"` // ok | insufficient
}

// MaterialShortfallDTO faltante en el cálculo de lote.
type MaterialShortfallDTO struct {
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// BatchCalculationResponse resultado de GET /bom/calculate/, indexado por nombre de material.
// Insufficient es null salvo que se haya pedido check_availability.
type BatchCalculationResponse struct {
	ProductID    int64                             `json:"product_id"`
	BatchSize    int64                             `json:"batch_size"`
	Materials    map[string]MaterialRequirementDTO `json:"materials"`
	Insufficient map[string]MaterialShortfallDTO   `json:"insufficient"`
}
