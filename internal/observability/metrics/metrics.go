package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EnqueueRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enqueuer_requests_total",
			Help: "Total number of enqueue requests by service and result",
		},
		[]string{"service", "result"},
	)

	TaskCreateDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enqueuer_task_create_duration_seconds",
			Help:    "Duration of task creation calls against the queue backend",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"queue"},
	)

	RoutingRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enqueuer_routing_refresh_total",
			Help: "Total number of routing table refresh attempts by outcome",
		},
		[]string{"outcome"},
	)

	RoutingServices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enqueuer_routing_services",
			Help: "Number of services in the currently held routing table",
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enqueuer_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
