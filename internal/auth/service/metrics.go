package service

import (
	"time"

	"github.com/AlibekovAA/movie-watchlist/internal/observability/metrics"
)

func incrementAccessTokensIssued() {
	metrics.AccessTokensIssued.Inc()
}

func recordRegistration(outcome string) {
	metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

func recordLogin(outcome string) {
	metrics.LoginsTotal.WithLabelValues(outcome).Inc()
}

func observePasswordHash(start time.Time) {
	metrics.PasswordHashDurationSeconds.Observe(time.Since(start).Seconds())
}
