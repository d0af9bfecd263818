package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentora_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rentora_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	BillingRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentora_billing_runs_total",
		Help: "Billing cycle runs by result",
	}, []string{"result"})

	InvoicesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentora_invoices_generated_total",
		Help: "Invoices created by the billing cycle engine",
	})

	InvoicesOverdueSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentora_invoices_overdue_swept_total",
		Help: "Invoices flipped PENDING to OVERDUE by the reconciliation sweep",
	})

	PaymentsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentora_payments_recorded_total",
		Help: "Payment ledger rows written by method",
	}, []string{"method"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentora_whatsapp_notifications_total",
		Help: "WhatsApp sends by outcome",
	}, []string{"kind", "outcome"})
)
