package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Electrotienda-api/internal/domain/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro. Cada consulta recalcula desde los movimientos; no hay caché.
type QueryUseCase struct {
	movements repository.MovementLogRepository
	products  repository.ProductRepository
	metrics   Metrics
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(movements repository.MovementLogRepository, products repository.ProductRepository, metrics Metrics) *QueryUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &QueryUseCase{movements: movements, products: products, metrics: metrics}
}

// GetProductInventory valoración actual. Producto inexistente: nil, nil (ausencia, no fallo).
func (uc *QueryUseCase) GetProductInventory(ctx context.Context, productID string) (*dto.ProductInventoryResponse, error) {
	return uc.valuate(ctx, productID, nil)
}

// GetProductInventoryAsOf valoración con los movimientos creados hasta at (inclusive).
func (uc *QueryUseCase) GetProductInventoryAsOf(ctx context.Context, productID string, at time.Time) (*dto.ProductInventoryResponse, error) {
	return uc.valuate(ctx, productID, &at)
}

func (uc *QueryUseCase) valuate(ctx context.Context, productID string, at *time.Time) (*dto.ProductInventoryResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	start := time.Now()
	rows, err := uc.movements.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	var v domaininv.Valuation
	if at != nil {
		v = domaininv.ValuateAsOf(rows, *at, product.CreatedAt)
	} else {
		v = domaininv.Valuate(rows, product.CreatedAt)
	}
	uc.metrics.ObserveFold(time.Since(start))

	out := toInventoryResponse(product, v)
	if at != nil {
		asOf := at.UTC()
		out.AsOf = &asOf
	}
	return out, nil
}

// GetMovements historial del producto, más reciente primero. Producto inexistente: nil, nil.
func (uc *QueryUseCase) GetMovements(ctx context.Context, productID string) ([]dto.MovementResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	rows, err := uc.movements.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(rows), nil
}

// ListMovements movimientos filtrados por producto y/o documento de referencia. Sin filtros, todos.
func (uc *QueryUseCase) ListMovements(ctx context.Context, filter dto.MovementFilter) ([]dto.MovementResponse, error) {
	var (
		rows []*entity.MovementLog
		err  error
	)
	switch {
	case filter.ReferenceTable != "" && filter.ReferenceID != "":
		rows, err = uc.movements.FindByReference(ctx, filter.ReferenceTable, filter.ReferenceID)
	case filter.ProductID != "":
		rows, err = uc.movements.FindByProduct(ctx, filter.ProductID)
	default:
		rows, err = uc.movements.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	filtered := rows[:0:0]
	for _, m := range rows {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.ReferenceTable != "" && m.ReferenceTable != filter.ReferenceTable {
			continue
		}
		if filter.ReferenceID != "" && m.ReferenceID != filter.ReferenceID {
			continue
		}
		filtered = append(filtered, m)
	}
	domaininv.SortNewestFirst(filtered)
	return toMovementResponses(filtered), nil
}

func toInventoryResponse(p *entity.Product, v domaininv.Valuation) *dto.ProductInventoryResponse {
	return &dto.ProductInventoryResponse{
		ProductID:        p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		CurrentQuantity:  v.CurrentQuantity,
		AverageCost:      v.AverageCost,
		LastCost:         v.LastCost,
		TotalValue:       v.TotalValue,
		LastMovementDate: v.LastMovementDate,
		MovementCount:    v.MovementCount,
	}
}

// ToMovementResponse proyección de un movimiento para la capa HTTP.
func ToMovementResponse(m *entity.MovementLog) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		UnitCost:       m.UnitCost,
		ReferenceTable: m.ReferenceTable,
		ReferenceID:    m.ReferenceID,
		ReversalOf:     m.ReversalOf,
		Note:           m.Note,
		UserID:         m.UserID,
		CreatedAt:      m.CreatedAt,
	}
}

func toMovementResponses(rows []*entity.MovementLog) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
