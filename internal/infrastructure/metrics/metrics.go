package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Payment metrics
	InstallmentsPaid     prometheus.Counter
	InstallmentsReversed prometheus.Counter
	PaymentDuration      prometheus.Histogram
	PaymentAmount        prometheus.Histogram
	PaymentErrors        *prometheus.CounterVec

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Title metrics
	TitlesCreated *prometheus.CounterVec

	// Ledger metrics
	MovementsAppended *prometheus.CounterVec

	// Recalculation metrics
	Recalculations      prometheus.Counter
	RecalculationDrift  prometheus.Histogram
	RecalculationErrors prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Payment metrics
		InstallmentsPaid: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaflux_installments_paid_total",
			Help: "Total number of installment payments recorded",
		}),
		InstallmentsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaflux_installments_reversed_total",
			Help: "Total number of installment payments reversed",
		}),
		PaymentDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contaflux_payment_duration_seconds",
			Help:    "Duration of payment and reversal operations",
			Buckets: prometheus.DefBuckets,
		}),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contaflux_payment_amount",
			Help:    "Installment payment amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		PaymentErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_payment_errors_total",
				Help: "Total number of payment errors by type",
			},
			[]string{"error_type"},
		),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaflux_accounts_created_total",
			Help: "Total number of financial accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// Title metrics
		TitlesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_titles_created_total",
				Help: "Total number of titles created by type",
			},
			[]string{"type"},
		),

		// Ledger metrics
		MovementsAppended: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_movements_appended_total",
				Help: "Total ledger movements appended by origin",
			},
			[]string{"origin"},
		),

		// Recalculation metrics
		Recalculations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaflux_recalculations_total",
			Help: "Total number of account balance recalculations",
		}),
		RecalculationDrift: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contaflux_recalculation_drift",
			Help:    "Absolute drift found between stored and recomputed balances",
			Buckets: []float64{0, 0.01, 0.1, 1, 10, 100, 1000},
		}),
		RecalculationErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaflux_recalculation_errors_total",
			Help: "Total number of failed balance recalculations",
		}),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contaflux_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "contaflux_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaflux_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
