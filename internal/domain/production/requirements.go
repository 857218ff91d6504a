package production

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

// QuantityPlaces decimales a los que se redondea toda cantidad requerida.
// La misma política aplica al cálculo, a la deducción ad-hoc y a la deducción por orden.
const QuantityPlaces int32 = 2

// StoredPlaces decimales que conserva el almacenamiento para cantidades de material.
const StoredPlaces int32 = 4

// ValidScale indica si q se guarda sin perder decimales (a lo sumo StoredPlaces).
func ValidScale(q decimal.Decimal) bool {
	return q.Equal(q.Truncate(StoredPlaces))
}

// RequiredQuantity implementa Requerido = round(CantidadPorUnidad * Lote, 2) (servicio de dominio).
func RequiredQuantity(perUnit decimal.Decimal, batchSize int64) decimal.Decimal {
	return perUnit.Mul(decimal.NewFromInt(batchSize)).Round(QuantityPlaces)
}

// Requirement consumo calculado de un material para un lote.
type Requirement struct {
	Material *entity.Material
	Required decimal.Decimal
}

// Shortfalls devuelve TODAS las líneas cuyo material no alcanza, en el orden recibido.
func Shortfalls(reqs []Requirement) []domain.Shortfall {
	var out []domain.Shortfall
	for _, r := range reqs {
		if r.Material.Quantity.LessThan(r.Required) {
			out = append(out, domain.Shortfall{
				MaterialID:   r.Material.ID,
				MaterialName: r.Material.Name,
				Required:     r.Required,
				Available:    r.Material.Quantity,
			})
		}
	}
	return out
}

// Consuming descarta las líneas cuyo requerido redondea a cero: no mueven stock ni dejan fila en el libro.
func Consuming(reqs []Requirement) []Requirement {
	out := reqs[:0:0]
	for _, r := range reqs {
		if !r.Required.IsZero() {
			out = append(out, r)
		}
	}
	return out
}

// Apply descuenta lo requerido de cada material. Solo llamar si Shortfalls está vacío.
func Apply(reqs []Requirement) {
	for _, r := range reqs {
		r.Material.Quantity = r.Material.Quantity.Sub(r.Required)
	}
}
