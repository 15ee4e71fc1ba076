package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ReportsCreated counts successfully stored safety reports.
	ReportsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "safety_reports_created_total",
			Help: "Number of safety reports created",
		},
	)

	// StatusTransitions counts investigation status updates by old and new status.
	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safety_reports_status_transitions_total",
			Help: "Investigation status updates",
		},
		[]string{"from", "to"},
	)

	// CommentActions counts comment mutations by action (add, edit, delete).
	CommentActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safety_reports_comment_actions_total",
			Help: "Comment mutations by action",
		},
		[]string{"action"},
	)

	// StatsCacheLookups counts investigation stats cache hits and misses.
	StatsCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safety_reports_stats_cache_lookups_total",
			Help: "Investigation stats cache lookups by result",
		},
		[]string{"result"},
	)

	// RequestDuration tracks HTTP handler latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time spent processing HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Registry holds this service's collectors plus the Go runtime collectors.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		ReportsCreated,
		StatusTransitions,
		CommentActions,
		StatsCacheLookups,
		RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the Prometheus exposition format for Registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
