// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Data metrics
	OrdersGenerated prometheus.Counter
	OrdersStored    prometheus.Counter
	InvalidOrders   prometheus.Counter

	// Analysis metrics
	AnalysisRuns     *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	SnapshotsWritten prometheus.Counter
	ReportsGenerated prometheus.Counter

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Dashboard metrics
	WSClients prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "ecommerce_analytics"
	}

	return &Metrics{
		OrdersGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "orders_generated_total",
			Help:      "Total number of synthetic orders generated",
		}),
		OrdersStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "orders_stored_total",
			Help:      "Total number of orders written to storage",
		}),
		InvalidOrders: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "invalid_orders_total",
			Help:      "Total number of order records rejected by validation",
		}),

		AnalysisRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total number of analysis runs by status",
		}, []string{"status"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Analysis run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		SnapshotsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "snapshots_written_total",
			Help:      "Total number of analysis snapshots persisted",
		}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		HTTPDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		WSClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "websocket_clients",
			Help:      "Number of connected websocket dashboard clients",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordOrdersGenerated adds to the orders generated counter.
func RecordOrdersGenerated(n int) {
	DefaultMetrics.OrdersGenerated.Add(float64(n))
}

// RecordOrdersStored adds to the orders stored counter.
func RecordOrdersStored(n int) {
	DefaultMetrics.OrdersStored.Add(float64(n))
}

// RecordInvalidOrders adds to the invalid orders counter.
func RecordInvalidOrders(n int) {
	DefaultMetrics.InvalidOrders.Add(float64(n))
}

// RecordAnalysisRun records one analysis run.
func RecordAnalysisRun(status string, durationSeconds float64) {
	DefaultMetrics.AnalysisRuns.WithLabelValues(status).Inc()
	DefaultMetrics.AnalysisDuration.Observe(durationSeconds)
}

// RecordSnapshotWritten increments the snapshots written counter.
func RecordSnapshotWritten() {
	DefaultMetrics.SnapshotsWritten.Inc()
}

// RecordReportGenerated increments the reports generated counter.
func RecordReportGenerated() {
	DefaultMetrics.ReportsGenerated.Inc()
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(endpoint, status string, durationSeconds float64) {
	DefaultMetrics.HTTPRequests.WithLabelValues(endpoint, status).Inc()
	DefaultMetrics.HTTPDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// SetWSClients updates the connected websocket clients gauge.
func SetWSClients(n int) {
	DefaultMetrics.WSClients.Set(float64(n))
}
