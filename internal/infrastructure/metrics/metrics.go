package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Snapshot metrics
	SnapshotPersists       prometheus.Counter
	SnapshotPersistErrors  prometheus.Counter
	SnapshotPersistSeconds prometheus.Histogram

	// Price metrics
	PriceFetches      *prometheus.CounterVec
	PriceFetchSeconds *prometheus.HistogramVec
	PriceRefreshRuns  prometheus.Counter

	// Database metrics
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Snapshot metrics
		SnapshotPersists: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashwell_snapshot_persists_total",
			Help: "Total number of ledger snapshot writes",
		}),
		SnapshotPersistErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashwell_snapshot_persist_errors_total",
			Help: "Total number of failed ledger snapshot writes",
		}),
		SnapshotPersistSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "cashwell_snapshot_persist_duration_seconds",
			Help:    "Duration of ledger snapshot writes",
			Buckets: prometheus.DefBuckets,
		}),

		// Price metrics
		PriceFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashwell_price_fetches_total",
				Help: "Total upstream price fetches by source and status",
			},
			[]string{"source", "status"},
		),
		PriceFetchSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashwell_price_fetch_duration_seconds",
				Help:    "Duration of upstream price fetches",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		PriceRefreshRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cashwell_price_refresh_runs_total",
			Help: "Total background price refresh runs",
		}),

		// Database metrics
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "cashwell_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
