package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/production"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

// BOMUseCase alta y consulta de líneas de la lista de materiales.
type BOMUseCase struct {
	repo repository.BillOfMaterialRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(repo repository.BillOfMaterialRepository) *BOMUseCase {
	return &BOMUseCase{repo: repo}
}

// Create agrega una línea. El par (producto, material) repetido es ErrDuplicate;
// un producto o material inexistente es ErrNotFound.
func (uc *BOMUseCase) Create(ctx context.Context, in dto.CreateBOMRequest) (*dto.BOMResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !production.ValidScale(in.Quantity) {
		return nil, fmt.Errorf("%w: quantity admite a lo sumo %d decimales", domain.ErrInvalidInput, production.StoredPlaces)
	}
	b := &entity.BillOfMaterial{ProductID: in.ProductID, MaterialID: in.MaterialID, Quantity: in.Quantity}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBOMResponse(b), nil
}

// List devuelve todas las líneas, o solo las del producto indicado.
func (uc *BOMUseCase) List(ctx context.Context, productID *int64) ([]dto.BOMResponse, error) {
	list, err := uc.repo.List(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BOMResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBOMResponse(b))
	}
	return out, nil
}

func toBOMResponse(b *entity.BillOfMaterial) *dto.BOMResponse {
	return &dto.BOMResponse{ID: b.ID, ProductID: b.ProductID, MaterialID: b.MaterialID, Quantity: b.Quantity}
}
