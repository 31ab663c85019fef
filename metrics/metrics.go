package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"geolookup/geo"
)

// Lookup outcomes.
const (
	OutcomeSuccess        = "success"
	OutcomeVendorFailure  = "vendor_failure"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

var (
	LookupRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geolookup",
			Name:      "lookup_requests_total",
			Help:      "Total number of vendor lookups by outcome",
		},
		[]string{"vendor", "outcome"},
	)

	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geolookup",
			Name:      "lookup_duration_seconds",
			Help:      "Vendor lookup duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"vendor"},
	)

	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geolookup",
			Name:      "cache_hits_total",
			Help:      "Total number of lookups answered from the cache",
		},
		[]string{"vendor"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "geolookup",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "geolookup",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// Metrics provides convenience methods for recording metrics
type Metrics struct{}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Outcome classifies the result of one lookup.
func Outcome(record geo.Record, err error) string {
	switch {
	case err == nil && !geo.Failed(record):
		return OutcomeSuccess
	case err == nil:
		return OutcomeVendorFailure
	case geo.IsInvalidRequest(err):
		return OutcomeInvalidRequest
	case geo.IsDecodeError(err):
		return OutcomeDecodeError
	default:
		return OutcomeTransportError
	}
}

// RecordLookup records one vendor lookup that went to the network.
func (m *Metrics) RecordLookup(vendor string, record geo.Record, err error, duration time.Duration) {
	LookupRequestsTotal.WithLabelValues(vendor, Outcome(record, err)).Inc()
	LookupDuration.WithLabelValues(vendor).Observe(duration.Seconds())
}

func (m *Metrics) RecordCacheHit(vendor string) {
	CacheHitsTotal.WithLabelValues(vendor).Inc()
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
