package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// CacheRequests counts response cache lookups by endpoint and result
	// (hit, miss, error).
	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizmaster_cache_requests_total",
			Help: "Response cache lookups by result",
		},
		[]string{"endpoint", "result"},
	)

	Invalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizmaster_cache_invalidations_total",
			Help: "Namespace clears by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizmaster_attempt_submissions_total",
			Help: "Attempt submissions by outcome",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. It is safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, CacheRequests, Invalidations, Submissions)
	})
}
