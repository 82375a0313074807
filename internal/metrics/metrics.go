package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	UserOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUserOperations,
			Help: HelpTextUserOperations,
		},
		[]string{LabelOperation, LabelOutcome},
	)

	UsersStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameUsersStored,
			Help: HelpTextUsersStored,
		},
	)
)

// RecordUserOperation counts one write operation.
func RecordUserOperation(operation, outcome string) {
	UserOperations.WithLabelValues(operation, outcome).Inc()
}
