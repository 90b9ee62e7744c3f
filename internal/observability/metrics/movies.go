package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MovieMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_mutations_total",
			Help: "Total number of successful movie mutations by kind",
		},
		[]string{"kind"},
	)

	WatchlistSubscribersActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "watchlist_subscribers_active",
			Help: "Number of connected watchlist event subscribers",
		},
	)

	WatchlistEventsBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_events_broadcast_total",
			Help: "Total number of watchlist events broadcast by type",
		},
		[]string{"type"},
	)

	WatchlistSubscribersDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "watchlist_subscribers_dropped_total",
			Help: "Total number of subscribers dropped for falling behind",
		},
	)
)
