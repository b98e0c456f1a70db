package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	extractRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extract_requests_total",
			Help: "Total number of text extraction requests",
		},
		[]string{"kind", "status"},
	)
	extractRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "extract_request_duration_seconds",
			Help:    "Duration of text extraction requests",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind"},
	)
	uploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extract_upload_bytes",
			Help:    "Size of uploaded files",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)
	cacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extract_cache_hits_total",
			Help: "Total number of extraction cache hits",
		},
	)
	cacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extract_cache_misses_total",
			Help: "Total number of extraction cache misses",
		},
	)
	cacheErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "extract_cache_errors_total",
			Help: "Total number of failed cache reads and writes",
		},
	)
)

func init() {
	prometheus.MustRegister(extractRequestsTotal)
	prometheus.MustRegister(extractRequestDuration)
	prometheus.MustRegister(uploadBytes)
	prometheus.MustRegister(cacheHitsTotal)
	prometheus.MustRegister(cacheMissesTotal)
	prometheus.MustRegister(cacheErrorsTotal)
}

// ObserveRequest records one finished extraction request. kind is the
// ingestion kind ("pdf", "image", "unsupported") or "none" when no file was read.
func ObserveRequest(kind, status string, start time.Time) {
	extractRequestsTotal.WithLabelValues(kind, status).Inc()
	extractRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func ObserveUpload(size int64) { uploadBytes.Observe(float64(size)) }

func CacheHit() { cacheHitsTotal.Inc() }

func CacheMiss() { cacheMissesTotal.Inc() }

func CacheError() { cacheErrorsTotal.Inc() }
