package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total text generation calls, by backend and outcome.",
		},
		[]string{"backend", "status"},
	)
	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Wall time of text generation calls.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"backend"},
	)
	stageCompletions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stage_completions_total",
			Help: "Successful pipeline stage completions, by stage.",
		},
		[]string{"stage"},
	)
)

func init() {
	prometheus.MustRegister(generationRequests, generationDuration, stageCompletions)
}

func ObserveGeneration(backend string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	generationRequests.WithLabelValues(backend, status).Inc()
	generationDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
}

func StageCompleted(stage string) {
	stageCompletions.WithLabelValues(stage).Inc()
}
