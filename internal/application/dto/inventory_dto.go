package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RestockRequest body para POST /materials/restock/.
type RestockRequest struct {
	MaterialID int64           `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Note       string          `json:"note,omitempty"`
}

// DeductRequest parámetros de POST /bom/deduct/ (query o JSON).
type DeductRequest struct {
	ProductID int64 `query:"product_id" json:"product_id"`
	BatchSize int64 `query:"batch_size" json:"batch_size"`
}

// ShortfallDTO una línea faltante en la respuesta 422.
type ShortfallDTO struct {
	Material  string          `json:"material"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// InsufficientDetail detalle estructurado de stock insuficiente.
type InsufficientDetail struct {
	Insufficient []ShortfallDTO `json:"insufficient"`
}

// InsufficientStockResponse cuerpo 422: todas las líneas faltantes a la vez.
type InsufficientStockResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Detail  InsufficientDetail `json:"detail"`
}

// InventoryLogQuery filtros de GET /logs/inventory/.
type InventoryLogQuery struct {
	MaterialID *int64 `query:"material_id"`
	Type       string `query:"type"`
	Limit      int    `query:"limit"`
}

// InventoryLogResponse fila del libro de inventario.
type InventoryLogResponse struct {
	ID                int64           `json:"id"`
	TransactionID     string          `json:"transaction_id"`
	MaterialID        int64           `json:"material_id"`
	ProductionOrderID *int64          `json:"production_order_id"`
	ChangeType        string          `json:"change_type"`
	Quantity          decimal.Decimal `json:"quantity"`
	Remaining         decimal.Decimal `json:"remaining"`
	Note              string          `json:"note"`
	Timestamp         time.Time       `json:"timestamp"`
}
