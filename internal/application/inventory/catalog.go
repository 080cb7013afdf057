package inventory

import (
	"context"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// ListProducts catálogo ordenado por SKU.
func (uc *QueryUseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetProduct producto por ID; nil, nil si no existe.
func (uc *QueryUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Price:           p.Price,
		MinSellingPrice: p.MinSellingPrice,
	}
}
