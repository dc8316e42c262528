package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Database metrics
var (
	DBOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_db_operations_total",
			Help: "Total database operations by repository, operation, and status",
		},
		[]string{"repo", "operation", "status"},
	)

	DBDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"repo", "operation"},
	)

	DBErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_db_errors_total",
			Help: "Total database errors by repository, operation, and error type",
		},
		[]string{"repo", "operation", "error_type"},
	)
)

// Merge metrics
var (
	// Merges counts finished merges by outcome.
	Merges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_merges_total",
			Help: "Total account merges by outcome",
		},
		[]string{"outcome"},
	)

	MergeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "identity_merge_duration_seconds",
			Help:    "Account merge duration in seconds, transaction included",
			Buckets: prometheus.DefBuckets,
		},
	)

	MergeSteps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_merge_steps_total",
			Help: "Total merge steps by step name and status",
		},
		[]string{"step", "status"},
	)

	MergeHookFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "identity_merge_hook_failures_total",
			Help: "Total merge completion hook failures",
		},
	)
)

// External login metrics
var (
	ExternalResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_external_login_resolutions_total",
			Help: "Total external login resolutions by action",
		},
		[]string{"action"},
	)
)

// gRPC metrics
var (
	GRPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_grpc_requests_total",
			Help: "Total unary gRPC requests by method and status code",
		},
		[]string{"method", "code"},
	)

	GRPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "identity_grpc_request_duration_seconds",
			Help:    "Unary gRPC request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)
