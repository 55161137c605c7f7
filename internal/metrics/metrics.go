package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationsTotal counts facade verifications by network and outcome
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_verifications_total",
			Help: "Total number of transaction verifications",
		},
		[]string{"network", "outcome"},
	)

	// VerificationDuration tracks end-to-end verification time including backoff sleeps
	VerificationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payout_verification_duration_seconds",
			Help:    "Verification duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 120, 180, 300},
		},
		[]string{"network"},
	)

	// VerificationAttempts counts individual orchestrator attempts by result
	VerificationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_verification_attempts_total",
			Help: "Total number of verification attempts",
		},
		[]string{"network", "result"},
	)

	// RejectionsTotal counts policy rejections by reason
	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_verification_rejections_total",
			Help: "Total number of policy rejections",
		},
		[]string{"network", "reason"},
	)

	// CacheLookups counts result cache lookups
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_verification_cache_lookups_total",
			Help: "Total number of result cache lookups",
		},
		[]string{"result"},
	)

	// RPCRequests counts outbound provider calls
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_rpc_requests_total",
			Help: "Total number of provider requests",
		},
		[]string{"network", "method", "status"},
	)

	// RPCDuration tracks provider call latency
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payout_rpc_request_duration_seconds",
			Help:    "Provider request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"network", "method"},
	)

	// TransfersTotal counts transfer status transitions
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_transfers_total",
			Help: "Total number of transfer status transitions",
		},
		[]string{"network", "status"},
	)

	// TransferAmount tracks verified payment amounts
	TransferAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payout_transfer_amount",
			Help:    "Verified USDT amount per transfer",
			Buckets: []float64{10, 20, 50, 100, 250, 500, 1000},
		},
		[]string{"network"},
	)

	// NotificationsTotal counts operator notifications
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payout_notifications_total",
			Help: "Total number of operator notifications",
		},
		[]string{"channel", "status"},
	)
)
