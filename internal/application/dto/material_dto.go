package dto

import "github.com/shopspring/decimal"

// CreateMaterialRequest entrada para crear un material. Unit por defecto "yards".
type CreateMaterialRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}
