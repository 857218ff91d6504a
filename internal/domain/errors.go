package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrMaterialNotFound  = errors.New("material no encontrado")
	ErrNoBillOfMaterial  = errors.New("el producto no tiene lista de materiales")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Shortfall una línea de BoM que no puede cubrirse con el stock actual.
type Shortfall struct {
	MaterialID   int64
	MaterialName string
	Required     decimal.Decimal
	Available    decimal.Decimal
}

// InsufficientStockError agrupa TODAS las líneas faltantes de una deducción.
// errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (requiere %s, disponible %s)", s.MaterialName, s.Required, s.Available))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock, strings.Join(parts, "; "))
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
