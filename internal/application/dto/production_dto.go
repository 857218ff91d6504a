package dto

import "time"

// CreateProductionOrderRequest entrada para crear una orden (estado inicial planned).
type CreateProductionOrderRequest struct {
	ProductID int64  `json:"product_id"`
	BatchSize int64  `json:"batch_size"`
	Note      string `json:"note"`
}

// UpdateStatusRequest body opcional de PUT /production_orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ProductionOrderResponse salida de una orden de producción.
type ProductionOrderResponse struct {
	ID          int64      `json:"id"`
	ProductID   int64      `json:"product_id"`
	BatchSize   int64      `json:"batch_size"`
	Status      string     `json:"status"`
	Note        string     `json:"note"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// AuditLogResponse entrada del audit log de producción.
type AuditLogResponse struct {
	ID                int64     `json:"id"`
	ProductionOrderID int64     `json:"production_order_id"`
	Action            string    `json:"action"`
	Note              string    `json:"note"`
	Timestamp         time.Time `json:"timestamp"`
}
