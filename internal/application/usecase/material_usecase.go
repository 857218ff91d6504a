package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/production"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

const defaultMaterialUnit = "yards"

// MaterialUseCase casos de uso CRUD para materiales. Quantity solo cambia vía reabastecimiento y deducción.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea un material. El nombre duplicado lo rechaza el almacenamiento (ErrDuplicate).
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity.IsNegative() || in.ReorderPoint.IsNegative() {
		return nil, fmt.Errorf("%w: quantity y reorder_point no pueden ser negativos", domain.ErrInvalidInput)
	}
	if !production.ValidScale(in.Quantity) || !production.ValidScale(in.ReorderPoint) {
		return nil, fmt.Errorf("%w: quantity y reorder_point admiten a lo sumo %d decimales", domain.ErrInvalidInput, production.StoredPlaces)
	}
	unit := in.Unit
	if unit == "" {
		unit = defaultMaterialUnit
	}
	m := &entity.Material{
		Name:         name,
		Description:  in.Description,
		Quantity:     in.Quantity,
		Unit:         unit,
		ReorderPoint: in.ReorderPoint,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return ToMaterialResponse(m), nil
}

// List lista materiales con paginación skip/limit.
func (uc *MaterialUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.MaterialResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	return toMaterialResponses(list), nil
}

// LowStock materiales con quantity < reorder_point.
func (uc *MaterialUseCase) LowStock(ctx context.Context) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return toMaterialResponses(list), nil
}

func toMaterialResponses(list []*entity.Material) []dto.MaterialResponse {
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMaterialResponse(m))
	}
	return out
}

// ToMaterialResponse convierte la entidad a su DTO.
func ToMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		ReorderPoint: m.ReorderPoint,
	}
}

