package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

// InventoryLogUseCase consulta del libro de inventario.
type InventoryLogUseCase struct {
	repo repository.InventoryLogRepository
}

// NewInventoryLogUseCase construye el caso de uso.
func NewInventoryLogUseCase(repo repository.InventoryLogRepository) *InventoryLogUseCase {
	return &InventoryLogUseCase{repo: repo}
}

// List devuelve las filas más recientes primero. limit por defecto 100; mayor que 500 es inválido.
func (uc *InventoryLogUseCase) List(ctx context.Context, q dto.InventoryLogQuery) ([]dto.InventoryLogResponse, error) {
	filter := entity.InventoryLogFilter{MaterialID: q.MaterialID, Limit: q.Limit}
	switch {
	case filter.Limit == 0:
		filter.Limit = dto.DefaultLimit
	case filter.Limit < 0 || filter.Limit > dto.MaxLimit:
		return nil, fmt.Errorf("%w: limit debe estar entre 1 y %d", domain.ErrInvalidInput, dto.MaxLimit)
	}
	if q.Type != "" {
		ct, err := entity.ParseChangeType(q.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		filter.ChangeType = &ct
	}

	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.InventoryLogResponse{
			ID:                l.ID,
			TransactionID:     l.TransactionID,
			MaterialID:        l.MaterialID,
			ProductionOrderID: l.ProductionOrderID,
			ChangeType:        string(l.ChangeType),
			Quantity:          l.Quantity,
			Remaining:         l.Remaining,
			Note:              l.Note,
			Timestamp:         l.Timestamp,
		})
	}
	return out, nil
}
