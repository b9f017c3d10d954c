package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas Prometheus del servicio (registro propio, no el global).
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Métricas de negocio del libro de stock
	StockMovementsTotal  *prometheus.CounterVec
	StockUnitsTotal      *prometheus.CounterVec
	StockRejectionsTotal *prometheus.CounterVec
}

// New construye y registra las métricas bajo el namespace indicado.
func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de peticiones HTTP por método, ruta y status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StockMovementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Entradas del libro de stock creadas por tipo y motivo",
		}, []string{"type", "reason"}),
		StockUnitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_total",
			Help:      "Unidades movidas en el libro de stock por tipo",
		}, []string{"type"}),
		StockRejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_rejections_total",
			Help:      "Ajustes rechazados por stock insuficiente",
		}, []string{"type"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StockMovementsTotal,
		m.StockUnitsTotal,
		m.StockRejectionsTotal,
	)
	return m
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry devuelve el registro (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP registra una petición HTTP terminada.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// StockMoved registra una entrada del libro aplicada.
func (m *Metrics) StockMoved(movementType, reason string, quantity int64) {
	m.StockMovementsTotal.WithLabelValues(movementType, reason).Inc()
	m.StockUnitsTotal.WithLabelValues(movementType).Add(float64(quantity))
}

// StockRejected registra un ajuste rechazado por stock insuficiente.
func (m *Metrics) StockRejected(movementType string) {
	m.StockRejectionsTotal.WithLabelValues(movementType).Inc()
}
