package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mood_server_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_server_logins_total",
			Help: "Login attempts by kind (user, admin) and status.",
		},
		[]string{"kind", "status"},
	)

	refreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mood_server_refreshes_total",
		Help: "Total number of successful token refreshes.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mood_server_token_verifications_total",
			Help: "Total number of token verification attempts by type and status.",
		},
		[]string{"type", "status"},
	)

	moodLogWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mood_server_mood_log_writes_total",
		Help: "Total number of mood log upserts.",
	})
)
