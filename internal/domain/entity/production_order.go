package entity

import (
	"fmt"
	"time"
)

// ProductionStatus estado de una orden de producción.
type ProductionStatus string

// Estados de una orden. Planned es el inicial; Complete el terminal.
const (
	ProductionStatusPlanned    ProductionStatus = "planned"
	ProductionStatusInProgress ProductionStatus = "in_progress"
	ProductionStatusComplete   ProductionStatus = "complete"
)

// ParseProductionStatus valida un estado recibido desde fuera (query, body, DB).
func ParseProductionStatus(s string) (ProductionStatus, error) {
	switch ProductionStatus(s) {
	case ProductionStatusPlanned, ProductionStatusInProgress, ProductionStatusComplete:
		return ProductionStatus(s), nil
	}
	return "", fmt.Errorf("estado de producción desconocido: %q", s)
}

// Acciones registradas en el audit log de producción.
const (
	AuditActionCreated       = "created"
	AuditActionStatusChanged = "status_changed"
	AuditActionCompleted     = "completed"
)

// ProductionOrder orden para fabricar BatchSize unidades de un producto.
type ProductionOrder struct {
	ID          int64
	ProductID   int64
	BatchSize   int64
	Status      ProductionStatus
	Note        string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// SetStatus cambia el estado; CompletedAt solo se estampa al pasar a Complete.
func (o *ProductionOrder) SetStatus(s ProductionStatus, now time.Time) {
	o.Status = s
	if s == ProductionStatusComplete {
		t := now
		o.CompletedAt = &t
	}
}

// ProductionAuditLog registro inmutable de una acción sobre una orden.
type ProductionAuditLog struct {
	ID                int64
	ProductionOrderID int64
	Action            string
	Note              string
	Timestamp         time.Time
}
