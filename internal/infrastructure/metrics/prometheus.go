// Package metrics instrumenta el libro de inventario y la API HTTP con Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
)

var _ inventory.Metrics = (*Prometheus)(nil)

// Prometheus agrupa los colectores de la aplicación sobre un registry propio.
type Prometheus struct {
	registry *prometheus.Registry

	movementsAppended   *prometheus.CounterVec
	operationsRejected  *prometheus.CounterVec
	foldDuration        prometheus.Histogram
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registra los colectores (más los de runtime de Go) en un registry nuevo.
func New(service string) *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": service}
	return &Prometheus{
		registry: reg,
		movementsAppended: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "inventory_movements_appended_total",
			Help:        "Movimientos agregados al libro, por tipo",
			ConstLabels: constLabels,
		}, []string{"type"}),
		operationsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "inventory_operations_rejected_total",
			Help:        "Operaciones de inventario rechazadas, por operación y motivo",
			ConstLabels: constLabels,
		}, []string{"operation", "reason"}),
		foldDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:        "inventory_valuation_fold_seconds",
			Help:        "Duración del cálculo de valorización sobre el libro",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total de peticiones HTTP",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duración de peticiones HTTP en segundos",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// Registry expone el registry (colectores extra como el del pool de conexiones).
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) MovementAppended(movementType string) {
	p.movementsAppended.WithLabelValues(movementType).Inc()
}

func (p *Prometheus) OperationRejected(operation, reason string) {
	p.operationsRejected.WithLabelValues(operation, reason).Inc()
}

func (p *Prometheus) ObserveFold(d time.Duration) {
	p.foldDuration.Observe(d.Seconds())
}

// Handler handler de /metrics para Fiber.
func (p *Prometheus) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
}

// Middleware cuenta peticiones y mide su duración, etiquetadas por la ruta registrada (no la URL cruda).
func (p *Prometheus) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = http.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		path := c.Route().Path
		if path == "" {
			path = "unknown"
		}
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		p.httpRequestsTotal.WithLabelValues(labels...).Inc()
		p.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
