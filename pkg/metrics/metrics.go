package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resultados posibles de una deducción.
const (
	OutcomeSuccess      = "success"
	OutcomeInsufficient = "insufficient"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// Metrics colectores Prometheus del servicio.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	DeductionsTotal  *prometheus.CounterVec
	ShortfallLines   prometheus.Counter
	RestocksTotal    *prometheus.CounterVec
	MaterialConsumed *prometheus.CounterVec
}

// New crea y registra los colectores en reg. Usar prometheus.NewRegistry() en tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craft_http_requests_total",
				Help: "Total de peticiones HTTP por método, ruta y status",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "craft_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DeductionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craft_deductions_total",
				Help: "Deducciones de materiales por origen (bom | order) y resultado",
			},
			[]string{"source", "outcome"},
		),
		ShortfallLines: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "craft_deduction_shortfall_lines_total",
				Help: "Líneas de BoM rechazadas por stock insuficiente",
			},
		),
		RestocksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craft_restocks_total",
				Help: "Reabastecimientos por resultado",
			},
			[]string{"outcome"},
		),
		MaterialConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craft_material_consumed_total",
				Help: "Cantidad consumida por id de material en deducciones confirmadas",
			},
			[]string{"material_id"},
		),
	}
	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.DeductionsTotal,
		m.ShortfallLines,
		m.RestocksTotal,
		m.MaterialConsumed,
	)
	return m
}

// NewNop crea colectores sin registrar (tests y herramientas CLI).
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
