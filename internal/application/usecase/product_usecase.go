package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/craft-inventory-api/internal/application/dto"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos terminados.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Una ubicación inexistente la rechaza el almacenamiento (ErrNotFound).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: quantity y price no pueden ser negativos", domain.ErrInvalidInput)
	}
	p := &entity.Product{
		Name:        name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
		LocationID:  in.LocationID,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// List lista productos con paginación, filtrando por ubicación si se indica.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, q.LocationID, q.Limit, q.Skip)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
		Price:       p.Price,
		LocationID:  p.LocationID,
	}
}
