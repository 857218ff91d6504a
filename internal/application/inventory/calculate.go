package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/production"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

// Estados por material en el cálculo de lote.
const (
	StatusOK           = "ok"
	StatusInsufficient = "insufficient"
)

// CalculateUseCase proyección de solo lectura: requerido vs disponible para un lote hipotético.
type CalculateUseCase struct {
	bomRepo      repository.BillOfMaterialRepository
	materialRepo repository.MaterialRepository
}

// NewCalculateUseCase construye el caso de uso.
func NewCalculateUseCase(bomRepo repository.BillOfMaterialRepository, materialRepo repository.MaterialRepository) *CalculateUseCase {
	return &CalculateUseCase{bomRepo: bomRepo, materialRepo: materialRepo}
}

// Calculate no modifica nada. Un material eliminado aparece como "Material #<id>" con disponible 0.
// Insufficient solo viene (no nil) cuando checkAvailability es true.
func (uc *CalculateUseCase) Calculate(ctx context.Context, productID, batchSize int64, checkAvailability bool) (*dto.BatchCalculationResponse, error) {
	if batchSize < 0 {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := tracer.Start(ctx, "inventory.Calculate")
	defer span.End()

	boms, err := uc.bomRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	out := &dto.BatchCalculationResponse{
		ProductID: productID,
		BatchSize: batchSize,
		Materials: make(map[string]dto.MaterialRequirementDTO, len(boms)),
	}
	if checkAvailability {
		out.Insufficient = map[string]dto.MaterialShortfallDTO{}
	}

	for _, b := range boms {
		m, err := uc.materialRepo.GetByID(ctx, b.MaterialID)
		if err != nil {
			return nil, err
		}
		line := dto.MaterialRequirementDTO{
			Required: production.RequiredQuantity(b.Quantity, batchSize),
			Status:   StatusOK,
		}
		name := fmt.Sprintf("Material #%d", b.MaterialID)
		if m != nil {
			name = m.Name
			line.Available = m.Quantity
			line.Unit = m.Unit
		}
		if checkAvailability && line.Available.LessThan(line.Required) {
			line.Status = StatusInsufficient
			out.Insufficient[name] = dto.MaterialShortfallDTO{Required: line.Required, Available: line.Available}
		}
		out.Materials[name] = line
	}
	return out, nil
}
