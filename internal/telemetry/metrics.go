package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ScheduleRunsTotal counts completed simulation runs per algorithm.
	ScheduleRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedsim_schedule_runs_total",
			Help: "Completed scheduling simulations by algorithm.",
		},
		[]string{"algorithm"},
	)

	// ScheduleErrorsTotal counts rejected simulation requests.
	ScheduleErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedsim_schedule_errors_total",
			Help: "Rejected scheduling requests by algorithm and reason.",
		},
		[]string{"algorithm", "reason"},
	)

	// APIRequestsTotal counts handled HTTP requests.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedsim_api_requests_total",
			Help: "HTTP requests by method, endpoint and status code.",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration observes request latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedsim_api_request_duration_seconds",
			Help:    "HTTP request latency by method, endpoint and status code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIActiveConnections tracks in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "schedsim_api_active_connections",
			Help: "Number of in-flight HTTP requests.",
		},
	)
)

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
