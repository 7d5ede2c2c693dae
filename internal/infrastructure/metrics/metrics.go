package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Posting metrics
	PostingsTotal     *prometheus.CounterVec
	PostingDuration   prometheus.Histogram
	DuplicateFlags    prometheus.Counter
	RetryExhaustions  prometheus.Counter
	NoOpAdjustments   prometheus.Counter
	LowBalanceSignals *prometheus.CounterVec

	// Settlement metrics
	SettlementsTotal  prometheus.Counter
	SettlementAmounts prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter

	// Shift metrics
	ShiftsOpened            prometheus.Counter
	ShiftsClosed            prometheus.Counter
	ReconciliationDrift     prometheus.Histogram
	ReconciliationsRecorded prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PostingsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kasledger_postings_total",
				Help: "Business events posted, by event kind and outcome",
			},
			[]string{"kind", "status"},
		),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kasledger_posting_duration_seconds",
			Help:    "End-to-end duration of one posting",
			Buckets: prometheus.DefBuckets,
		}),
		DuplicateFlags: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_duplicate_flags_total",
			Help: "Events flagged as possible duplicates",
		}),
		RetryExhaustions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_retry_exhaustions_total",
			Help: "Postings that failed after exhausting contention retries",
		}),
		NoOpAdjustments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_noop_adjustments_total",
			Help: "Balance adjustments that found nothing to correct",
		}),
		LowBalanceSignals: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kasledger_low_balance_signals_total",
				Help: "Postings that left an account under its advisory minimum",
			},
			[]string{"account"},
		),

		SettlementsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_settlements_total",
			Help: "Merchant settlements executed",
		}),
		SettlementAmounts: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kasledger_settlement_amount_rupiah",
			Help:    "Gross settlement amounts",
			Buckets: []float64{100_000, 500_000, 1_000_000, 5_000_000, 10_000_000, 50_000_000},
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_accounts_created_total",
			Help: "Kas accounts created",
		}),

		ShiftsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_shifts_opened_total",
			Help: "Operator shifts opened",
		}),
		ShiftsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_shifts_closed_total",
			Help: "Operator shifts closed",
		}),
		ReconciliationDrift: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "kasledger_reconciliation_drift_rupiah",
			Help:    "Absolute difference between expected and counted cash",
			Buckets: []float64{0, 1_000, 5_000, 10_000, 50_000, 100_000},
		}),
		ReconciliationsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "kasledger_reconciliations_total",
			Help: "Shift reconciliations recorded",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kasledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kasledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "kasledger_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
