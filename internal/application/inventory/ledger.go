package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Electrotienda-api/internal/domain/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

// Ledger concentra la escritura del libro de movimientos: bloqueo de productos,
// anexado con guarda de stock no negativo, compensaciones y publicación post-commit.
// Todos los productores (facturas, devoluciones, ajustes) pasan por aquí.
type Ledger struct {
	metrics   Metrics
	publisher EventPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewLedger construye el motor. metrics, publisher y log pueden ser nil.
func NewLedger(metrics Metrics, publisher EventPublisher, log *logger.Logger) *Ledger {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{
		metrics:   metrics,
		publisher: publisher,
		log:       log.Component("ledger"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// LockProducts bloquea las filas de los productos en orden de id (evita deadlocks entre
// transacciones concurrentes) y los devuelve indexados. Un producto inexistente es ErrNotFound.
func (l *Ledger) LockProducts(ctx context.Context, products repository.ProductRepository, ids []string) (map[string]*entity.Product, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	out := make(map[string]*entity.Product, len(unique))
	for _, id := range unique {
		p, err := products.LockForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		out[id] = p
	}
	return out, nil
}

// Valuation pliega los movimientos actuales del producto.
func (l *Ledger) Valuation(ctx context.Context, movements repository.MovementLogRepository, product *entity.Product) (domaininv.Valuation, []*entity.MovementLog, error) {
	start := time.Now()
	rows, err := movements.FindByProduct(ctx, product.ID)
	if err != nil {
		return domaininv.Valuation{}, nil, err
	}
	v := domaininv.Valuate(rows, product.CreatedAt)
	l.metrics.ObserveFold(time.Since(start))
	return v, rows, nil
}

// Append anexa los movimientos asignando id y fecha. Antes de escribir verifica, por producto,
// que la suma resultante no quede negativa; en ese caso no escribe nada y devuelve ErrInsufficientStock.
// Debe llamarse con los productos ya bloqueados (LockProducts) dentro de la misma transacción.
func (l *Ledger) Append(ctx context.Context, movements repository.MovementLogRepository, entries []*entity.MovementLog) error {
	if len(entries) == 0 {
		return nil
	}
	deltas := make(map[string]int64)
	order := make([]string, 0)
	for _, e := range entries {
		if !entity.ValidMovementType(e.Type) {
			return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, e.Type)
		}
		if e.Quantity == 0 {
			return fmt.Errorf("%w: movimiento con cantidad cero", domain.ErrInvalidInput)
		}
		if _, ok := deltas[e.ProductID]; !ok {
			order = append(order, e.ProductID)
		}
		deltas[e.ProductID] += e.Quantity
	}
	for _, productID := range order {
		if deltas[productID] >= 0 {
			continue
		}
		rows, err := movements.FindByProduct(ctx, productID)
		if err != nil {
			return err
		}
		current := domaininv.CurrentQuantity(rows)
		if current+deltas[productID] < 0 {
			return fmt.Errorf("%w: producto %s (disponible %d, solicitado %d)",
				domain.ErrInsufficientStock, productID, current, -deltas[productID])
		}
	}

	now := l.now()
	for _, e := range entries {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		e.ID = id.String()
		e.CreatedAt = now
		if err := movements.Append(ctx, e); err != nil {
			return fmt.Errorf("anexar movimiento %s: %w", e.Type, err)
		}
	}
	return nil
}

// Compensate construye las compensaciones de cada movimiento aún activo del documento
// (table, id). label vacío conserva el tipo original. No escribe nada.
func (l *Ledger) Compensate(ctx context.Context, movements repository.MovementLogRepository, table, id, label, userID, note string) ([]*entity.MovementLog, error) {
	rows, err := movements.FindByReference(ctx, table, id)
	if err != nil {
		return nil, err
	}
	active := domaininv.Active(rows)
	out := make([]*entity.MovementLog, 0, len(active))
	for _, m := range active {
		out = append(out, m.Compensation(label, userID, note))
	}
	return out, nil
}

// Committed registra métricas y publica los movimientos de una unidad de trabajo confirmada.
// Un fallo de publicación solo se registra: el commit ya ocurrió.
func (l *Ledger) Committed(ctx context.Context, operation string, movements []*entity.MovementLog) {
	for _, m := range movements {
		l.metrics.MovementAppended(m.Type)
	}
	if len(movements) == 0 {
		return
	}
	if err := l.publisher.PublishMovements(ctx, movements); err != nil {
		l.log.Error().Err(err).Str("operation", operation).Int("movements", len(movements)).
			Msg("no se pudieron publicar los movimientos")
	}
}

// Rejected registra el rechazo de una operación y devuelve err sin cambios.
func (l *Ledger) Rejected(operation string, err error) error {
	reason := RejectionReason(err)
	l.metrics.OperationRejected(operation, reason)
	ev := l.log.Warn()
	if reason == "internal" {
		ev = l.log.Error()
	}
	ev.Err(err).Str("operation", operation).Str("reason", reason).Msg("operación rechazada")
	return err
}

// RejectionReason clasifica err para métricas y logs.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrReturnQuantityExceeded):
		return "return_quantity_exceeded"
	case errors.Is(err, domain.ErrProductNotOnInvoice):
		return "product_not_on_invoice"
	case errors.Is(err, domain.ErrPriceBelowMinimum):
		return "price_below_minimum"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
