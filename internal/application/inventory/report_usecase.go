package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/domain"
	domaininv "github.com/jhoicas/Electrotienda-api/internal/domain/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

// DefaultLowStockThreshold umbral de "stock bajo" cuando no se configura otro.
const DefaultLowStockThreshold int64 = 10

// ReportUseCase reporte de inventario: una valoración por producto del catálogo.
type ReportUseCase struct {
	movements repository.MovementLogRepository
	products  repository.ProductRepository
	pdf       ReportPDFGenerator
	threshold int64
	metrics   Metrics
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso. threshold < 0 usa DefaultLowStockThreshold.
func NewReportUseCase(
	movements repository.MovementLogRepository,
	products repository.ProductRepository,
	pdf ReportPDFGenerator,
	threshold int64,
	metrics Metrics,
) *ReportUseCase {
	if threshold < 0 {
		threshold = DefaultLowStockThreshold
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ReportUseCase{
		movements: movements,
		products:  products,
		pdf:       pdf,
		threshold: threshold,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Threshold umbral configurado.
func (uc *ReportUseCase) Threshold() int64 { return uc.threshold }

// GetInventoryReport valora todo el catálogo. threshold nil usa el configurado.
// lowStock: 0 < cantidad <= umbral; outOfStock: cantidad <= 0. Ítems ordenados por SKU.
func (uc *ReportUseCase) GetInventoryReport(ctx context.Context, threshold *int64) (*dto.InventoryReportResponse, error) {
	limit := uc.threshold
	if threshold != nil {
		if *threshold < 0 {
			return nil, fmt.Errorf("%w: low_stock_threshold no puede ser negativo", domain.ErrInvalidInput)
		}
		limit = *threshold
	}

	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	report := &dto.InventoryReportResponse{
		Items:               make([]dto.InventoryReportItem, 0, len(products)),
		TotalInventoryValue: decimal.Zero,
		TotalProducts:       len(products),
		LowStockThreshold:   limit,
		GeneratedAt:         uc.now(),
	}
	for _, p := range products {
		start := time.Now()
		rows, err := uc.movements.FindByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("reporte: movimientos de %s: %w", p.ID, err)
		}
		v := domaininv.Valuate(rows, p.CreatedAt)
		uc.metrics.ObserveFold(time.Since(start))

		status := dto.StockStatusOK
		switch {
		case v.CurrentQuantity <= 0:
			status = dto.StockStatusOutOfStock
			report.OutOfStockItems++
		case v.CurrentQuantity <= limit:
			status = dto.StockStatusLowStock
			report.LowStockItems++
		}
		report.TotalInventoryValue = report.TotalInventoryValue.Add(v.TotalValue)
		report.Items = append(report.Items, dto.InventoryReportItem{
			ProductID:        p.ID,
			SKU:              p.SKU,
			Name:             p.Name,
			CurrentQuantity:  v.CurrentQuantity,
			AverageCost:      v.AverageCost,
			LastCost:         v.LastCost,
			TotalValue:       v.TotalValue,
			LastMovementDate: v.LastMovementDate,
			Status:           status,
		})
	}
	sort.SliceStable(report.Items, func(i, j int) bool {
		if report.Items[i].SKU != report.Items[j].SKU {
			return report.Items[i].SKU < report.Items[j].SKU
		}
		return report.Items[i].ProductID < report.Items[j].ProductID
	})
	return report, nil
}

// GetInventoryReportPDF genera el reporte y lo renderiza en PDF.
func (uc *ReportUseCase) GetInventoryReportPDF(ctx context.Context, threshold *int64) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("reporte: generador PDF no configurado")
	}
	report, err := uc.GetInventoryReport(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateInventoryReport(report)
}
