package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	orgChartCacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orgchart",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Total number of snapshot cache lookups broken down by hit/miss.",
	}, []string{"result"})

	orgChartCacheInvalidate = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orgchart",
		Subsystem: "cache",
		Name:      "invalidate_total",
		Help:      "Total number of snapshot cache invalidations broken down by reason.",
	}, []string{"reason"})

	orgChartAssembleSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "orgchart",
		Subsystem: "assemble",
		Name:      "duration_seconds",
		Help:      "Time spent assembling a chart forest.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	orgChartAnomalies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orgchart",
		Subsystem: "assemble",
		Name:      "anomalies_total",
		Help:      "Records flagged while assembling, broken down by kind.",
	}, []string{"kind"})
)

func recordCacheRequest(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	orgChartCacheRequests.WithLabelValues(result).Inc()
}

func recordCacheInvalidate(reason string) {
	if reason == "" {
		reason = "manual"
	}
	orgChartCacheInvalidate.WithLabelValues(reason).Inc()
}

func recordAnomalies(duplicates, selfRefs, detached int) {
	if duplicates > 0 {
		orgChartAnomalies.WithLabelValues("duplicate_id").Add(float64(duplicates))
	}
	if selfRefs > 0 {
		orgChartAnomalies.WithLabelValues("self_reference").Add(float64(selfRefs))
	}
	if detached > 0 {
		orgChartAnomalies.WithLabelValues("detached").Add(float64(detached))
	}
}
