// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Build metrics
	TransactionsBuilt *prometheus.CounterVec
	BuildErrors       *prometheus.CounterVec
	BuildDuration     *prometheus.HistogramVec
	InstructionCount  prometheus.Histogram
	TransactionSize   prometheus.Histogram

	// Vanity search metrics
	VanitySearches prometheus.Counter
	VanityAttempts prometheus.Histogram
	VanityDuration prometheus.Histogram

	// RPC metrics
	RPCCallLatency *prometheus.HistogramVec
	RPCCallErrors  *prometheus.CounterVec

	// Fee metrics
	PlatformFeesQuoted prometheus.Counter
	FundsCheckFailures prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "solana_token_forge"
	}

	return &Metrics{
		TransactionsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "transactions_total",
			Help:      "Total number of transactions assembled successfully",
		}, []string{"token_program"}),
		BuildErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "errors_total",
			Help:      "Total number of failed builds by error kind",
		}, []string{"kind"}),
		BuildDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "duration_seconds",
			Help:      "End-to-end build duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"token_program"}),
		InstructionCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "instruction_count",
			Help:      "Instructions per assembled transaction",
			Buckets:   []float64{2, 4, 6, 8, 12, 16, 24, 32},
		}),
		TransactionSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "build",
			Name:      "transaction_size_bytes",
			Help:      "Serialized transaction size in bytes",
			Buckets:   []float64{256, 512, 768, 1024, 1152, 1232},
		}),

		VanitySearches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "vanity",
			Name:      "searches_total",
			Help:      "Total number of vanity address searches",
		}),
		VanityAttempts: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "vanity",
			Name:      "attempts",
			Help:      "Keypair attempts per vanity search",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 8),
		}),
		VanityDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "vanity",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration per vanity search",
			Buckets:   prometheus.DefBuckets,
		}),

		RPCCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_duration_seconds",
			Help:      "RPC call latency by method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		RPCCallErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "call_errors_total",
			Help:      "RPC call errors by method",
		}, []string{"method"}),

		PlatformFeesQuoted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fees",
			Name:      "quotes_total",
			Help:      "Total number of platform fee quotes produced",
		}),
		FundsCheckFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fees",
			Name:      "funds_check_failures_total",
			Help:      "Balance pre-checks that found insufficient funds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordBuild records a successful build.
func RecordBuild(tokenProgram string, seconds float64, instructionCount, sizeBytes int) {
	DefaultMetrics.TransactionsBuilt.WithLabelValues(tokenProgram).Inc()
	DefaultMetrics.BuildDuration.WithLabelValues(tokenProgram).Observe(seconds)
	DefaultMetrics.InstructionCount.Observe(float64(instructionCount))
	DefaultMetrics.TransactionSize.Observe(float64(sizeBytes))
}

// RecordBuildError records a failed build by taxonomy kind.
func RecordBuildError(kind string) {
	DefaultMetrics.BuildErrors.WithLabelValues(kind).Inc()
}

// RecordVanitySearch records one vanity search outcome.
func RecordVanitySearch(attempts uint64, seconds float64) {
	DefaultMetrics.VanitySearches.Inc()
	DefaultMetrics.VanityAttempts.Observe(float64(attempts))
	DefaultMetrics.VanityDuration.Observe(seconds)
}

// RecordRPCCall records RPC call latency and errors.
func RecordRPCCall(method string, seconds float64, err error) {
	DefaultMetrics.RPCCallLatency.WithLabelValues(method).Observe(seconds)
	if err != nil {
		DefaultMetrics.RPCCallErrors.WithLabelValues(method).Inc()
	}
}

// RecordFeeQuote records a produced platform fee quote.
func RecordFeeQuote() {
	DefaultMetrics.PlatformFeesQuoted.Inc()
}

// RecordFundsCheckFailure records a failed balance pre-check.
func RecordFundsCheckFailure() {
	DefaultMetrics.FundsCheckFailures.Inc()
}
