package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Poll outcomes.
const (
	ResultOK           = "ok"
	ResultNetworkError = "network_error"
	ResultMalformed    = "malformed"
	ResultDiscarded    = "discarded"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	pollTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cryptodash",
			Name:      "poll_total",
			Help:      "Quote polls by symbol and outcome.",
		},
		[]string{"symbol", "result"},
	)

	pollDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cryptodash",
			Name:      "poll_duration_seconds",
			Help:      "Duration of quote requests.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"symbol"},
	)

	lastSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "cryptodash",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last applied quote.",
		},
		[]string{"symbol"},
	)
)

func init() {
	Registry.MustRegister(
		pollTotal,
		pollDuration,
		lastSuccess,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// RecordPoll counts one poll outcome for symbol.
func RecordPoll(symbol, result string, took time.Duration) {
	pollTotal.WithLabelValues(symbol, result).Inc()
	if result != ResultDiscarded {
		pollDuration.WithLabelValues(symbol).Observe(took.Seconds())
	}
	if result == ResultOK {
		lastSuccess.WithLabelValues(symbol).Set(float64(time.Now().Unix()))
	}
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
