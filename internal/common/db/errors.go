package db

import (
	"errors"
	"time"

	"github.com/jackc/pgconn"

	"github.com/AlibekovAA/movie-watchlist/internal/observability/metrics"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	uniqueViolationCode = "23505"
)

// ObserveQuery records the duration of a query and, when it failed with
// something other than an expected miss, an error sample.
func ObserveQuery(driver, table, operation string, start time.Time, err error, expected ...error) {
	metrics.DBQueryDurationSeconds.WithLabelValues(driver, table, operation).Observe(time.Since(start).Seconds())

	if err == nil {
		return
	}
	for _, e := range expected {
		if errors.Is(err, e) {
			return
		}
	}
	metrics.DBQueryErrors.WithLabelValues(driver, table, operation).Inc()
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
