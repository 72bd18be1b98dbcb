package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every Prometheus collector exported by the service.
// All methods are safe to call on a nil *Metrics, which turns them into no-ops.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal    *prometheus.CounterVec
	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge

	slotsGenerated      *prometheus.CounterVec
	capacityEvaluations *prometheus.CounterVec
	blocksMerged        prometheus.Counter
	blockConflicts      prometheus.Counter
}

// New creates collectors and registers them in the default registry.
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates collectors and registers them in reg.
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections.",
			ConstLabels: constLabels,
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: constLabels,
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections.",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}),

		slotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Slots produced by the slot generator.",
			ConstLabels: constLabels,
		}, []string{"available"}),
		capacityEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "capacity_evaluations_total",
			Help:        "Capacity evaluations by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		blocksMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_blocks_merged_total",
			Help:        "Existing availability blocks absorbed by a merge.",
			ConstLabels: constLabels,
		}),
		blockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "availability_block_conflicts_total",
			Help:        "Bookings reported as conflicting with a new availability block.",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueriesTotal,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.slotsGenerated,
		m.capacityEvaluations,
		m.blocksMerged,
		m.blockConflicts,
	)

	return m
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery records one executed query.
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats updates connection pool gauges.
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(open))
	m.dbInUse.Set(float64(inUse))
	m.dbIdle.Set(float64(idle))
	m.dbWaitCount.Set(float64(waitCount))
}

// AddSlots records generated slots split by availability.
func (m *Metrics) AddSlots(available, unavailable int) {
	if m == nil {
		return
	}
	m.slotsGenerated.WithLabelValues("true").Add(float64(available))
	m.slotsGenerated.WithLabelValues("false").Add(float64(unavailable))
}

// IncCapacityEvaluation records a capacity evaluation outcome.
func (m *Metrics) IncCapacityEvaluation(outcome string) {
	if m == nil {
		return
	}
	m.capacityEvaluations.WithLabelValues(outcome).Inc()
}

// AddBlocksMerged records how many stored blocks a merge absorbed and how many bookings conflict.
func (m *Metrics) AddBlocksMerged(merged, conflicts int) {
	if m == nil {
		return
	}
	m.blocksMerged.Add(float64(merged))
	m.blockConflicts.Add(float64(conflicts))
}
