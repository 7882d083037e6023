package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "growth_recommend_latency_seconds",
		Help:    "Latency of the recommend handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "growth_recommend_requests_total",
		Help: "Total number of recommend requests",
	})

	// Latency of the funnel diagnosis HTTP handler
	DiagnoseLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "growth_funnel_diagnose_latency_seconds",
		Help:    "Latency of the funnel diagnose handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of funnel diagnosis requests served
	DiagnoseRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "growth_funnel_diagnose_requests_total",
		Help: "Total number of funnel diagnose requests",
	})

	// Cache hits for funnel diagnoses served from Redis
	DiagnoseCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "growth_funnel_diagnose_cache_hits_total",
		Help: "Funnel diagnoses served from cache",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		DiagnoseLatency,
		DiagnoseRequests,
		DiagnoseCacheHits,
	)
}
