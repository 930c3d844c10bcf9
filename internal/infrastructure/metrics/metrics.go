package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter
	AccountsUpdated prometheus.Counter

	// Journal metrics
	EntriesPosted       prometheus.Counter
	EntriesRejected     *prometheus.CounterVec
	EntryLines          prometheus.Histogram
	LinesCascadeDeleted prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),
		AccountsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_accounts_updated_total",
			Help: "Total number of accounts updated",
		}),

		// Journal metrics
		EntriesPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_journal_entries_posted_total",
			Help: "Total number of journal entries posted",
		}),
		EntriesRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_journal_entries_rejected_total",
				Help: "Total number of journal entries rejected by reason",
			},
			[]string{"reason"},
		),
		EntryLines: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeper_journal_entry_lines",
			Help:    "Number of lines per posted journal entry",
			Buckets: []float64{2, 3, 4, 6, 8, 12, 16, 32},
		}),
		LinesCascadeDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeper_journal_lines_cascade_deleted_total",
			Help: "Total number of journal lines removed by account deletion",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bookkeeper_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookkeeper_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
