package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_server_ai_requests_total",
			Help: "Total number of requests to the text generator.",
		},
		[]string{"backend", "model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mood_server_ai_request_duration_seconds",
			Help:    "Histogram of text generator request durations.",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		},
		[]string{"backend", "model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mood_server_ai_prompt_tokens",
			Help:    "Estimated prompt size in tokens.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"backend", "model"},
	)
)
