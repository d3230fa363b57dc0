package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vendorhub", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vendorhub", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	// StoreOperationDuration tracks latency of document store calls per collection and operation.
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "vendorhub", Name: "store_operation_duration_seconds", Help: "Latency of document store operations.", Buckets: prometheus.DefBuckets},
		[]string{"collection", "op"},
	)
	StoreOperationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vendorhub", Name: "store_operation_errors_total", Help: "Failed document store operations."},
		[]string{"collection", "op"},
	)

	// FileMapUpdates counts out-of-band file reference status updates by status and result.
	FileMapUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "vendorhub", Name: "filemap_updates_total", Help: "File reference status updates dispatched after primary writes."},
		[]string{"status", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperationDuration)
	reg.MustRegister(StoreOperationErrors)
	reg.MustRegister(FileMapUpdates)
}
