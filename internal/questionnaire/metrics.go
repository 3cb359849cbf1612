package questionnaire

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mood_server_questionnaire_sessions_started_total",
			Help: "Total number of questionnaire sessions started.",
		},
	)
	questionsIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_server_questionnaire_questions_total",
			Help: "Questions returned to users, by source (seed, generated, exhausted).",
		},
		[]string{"source"},
	)
	generationAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_server_questionnaire_generation_attempts_total",
			Help: "Follow-up generation attempts, by outcome.",
		},
		[]string{"outcome"}, // accepted, parse_failure, duplicate, timeout
	)
	summariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_server_questionnaire_summaries_total",
			Help: "Summary requests, by status.",
		},
		[]string{"status"},
	)
	sessionsEvictedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mood_server_questionnaire_sessions_evicted_total",
			Help: "Idle sessions evicted from the in-memory store.",
		},
	)
	sessionsInMemory = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mood_server_questionnaire_sessions_in_memory",
			Help: "Sessions currently held by the in-memory store.",
		},
	)
)
