// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы допуска бронирования
const (
	OutcomeAdmitted             = "admitted"
	OutcomeInvalidArgument      = "invalid_argument"
	OutcomeNotFound             = "not_found"
	OutcomeConflict             = "conflict"
	OutcomeInsufficientCapacity = "insufficient_capacity"
	OutcomeForbidden            = "forbidden"
	OutcomeError                = "error"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	AdmissionsTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном регистре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		DBQueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		AdmissionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_admissions_total",
			Help:        "Booking admission decisions by operation and outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
	}
}

// ObserveAdmission учитывает решение о допуске бронирования
func (m *Metrics) ObserveAdmission(operation, outcome string) {
	if m == nil {
		return
	}
	m.AdmissionsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObservePool записывает состояние пула соединений
func (m *Metrics) ObservePool(serviceName string, stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(serviceName).Set(float64(stats.OpenConnections))
	m.DBInUseConnections.WithLabelValues(serviceName).Set(float64(stats.InUse))
	m.DBIdleConnections.WithLabelValues(serviceName).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(serviceName).Set(float64(stats.WaitCount))
}

// ObserveQuery учитывает выполненный запрос к базе данных
func (m *Metrics) ObserveQuery(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}
