// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Payments
	PaymentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_created_total",
			Help: "Payments persisted after a successful gateway handoff",
		},
	)

	GatewayInitFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_gateway_init_failures_total",
			Help: "Gateway handoffs that errored or were refused",
		},
	)

	PaymentsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_resolved_total",
			Help: "Callback resolutions by outcome (success, failed, duplicate)",
		},
		[]string{"outcome"},
	)

	ResolveConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_resolve_conflicts_total",
			Help: "Callbacks that contradicted an already terminal payment",
		},
	)

	PaymentsRefunded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_refunded_total",
			Help: "Payments moved to refunded",
		},
	)

	// Fees
	FeeOverpayments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_overpayments_total",
			Help: "Ledger updates where paid amount exceeded the fee total",
		},
	)

	FeesMarkedOverdue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fees_marked_overdue_total",
			Help: "Fees flipped to OVERDUE by the sweep",
		},
	)

	// Queries
	PaginationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagination_query_duration_seconds",
			Help:    "Latency of paginated count+find pairs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection"},
	)
)
