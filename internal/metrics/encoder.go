package metrics

import "github.com/prometheus/client_golang/prometheus"

// Encoder Prometheus metrics.
var (
	EncodeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spotfinder",
			Name:      "encode_requests_total",
			Help:      "Total number of encode requests",
		},
		[]string{"provider", "modality", "status"},
	)

	EncodeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "spotfinder",
			Name:      "encode_request_duration_seconds",
			Help:      "Encode request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "modality"},
	)

	EncodeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spotfinder",
			Name:      "encode_errors_total",
			Help:      "Total encode errors",
		},
		[]string{"provider", "modality", "error_type"},
	)

	EncodeCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spotfinder",
			Name:      "encode_cache_total",
			Help:      "Encode cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var encMetricsRegistered bool

// RegisterEncoderMetrics registers the encoder metrics. Call once from main.
func RegisterEncoderMetrics() {
	if encMetricsRegistered {
		return
	}
	prometheus.MustRegister(EncodeRequestsTotal)
	prometheus.MustRegister(EncodeRequestDuration)
	prometheus.MustRegister(EncodeErrorsTotal)
	prometheus.MustRegister(EncodeCacheTotal)
	encMetricsRegistered = true
}
