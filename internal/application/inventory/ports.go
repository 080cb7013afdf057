package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

// Repos repositorios atados a una misma unidad de trabajo.
type Repos struct {
	Movements        repository.MovementLogRepository
	Products         repository.ProductRepository
	PurchaseInvoices repository.PurchaseInvoiceRepository
	SalesInvoices    repository.SalesInvoiceRepository
	PurchaseReturns  repository.ReturnRepository
	SalesReturns     repository.ReturnRepository
}

// Returns devuelve el repositorio de devoluciones de la clase indicada.
func (r Repos) Returns(kind string) repository.ReturnRepository {
	if kind == entity.ReturnKindPurchase {
		return r.PurchaseReturns
	}
	return r.SalesReturns
}

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún movimiento queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// Metrics instrumentación del libro (Prometheus en producción).
type Metrics interface {
	MovementAppended(movementType string)
	OperationRejected(operation, reason string)
	ObserveFold(d time.Duration)
}

// EventPublisher publica los movimientos ya confirmados (Kafka en producción).
type EventPublisher interface {
	PublishMovements(ctx context.Context, movements []*entity.MovementLog) error
}

// ReportPDFGenerator renderiza el reporte de inventario.
type ReportPDFGenerator interface {
	GenerateInventoryReport(report *dto.InventoryReportResponse) ([]byte, error)
}

// NopMetrics descarta toda la instrumentación.
type NopMetrics struct{}

func (NopMetrics) MovementAppended(string)          {}
func (NopMetrics) OperationRejected(string, string) {}
func (NopMetrics) ObserveFold(time.Duration)        {}

// NopPublisher no publica nada (sin brokers configurados).
type NopPublisher struct{}

func (NopPublisher) PublishMovements(context.Context, []*entity.MovementLog) error { return nil }
