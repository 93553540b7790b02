// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FlowInvocationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flow_invocations_completed_total",
			Help: "Total number of AI flow invocations that produced schema-conformant output",
		},
		[]string{"operation"},
	)

	FlowInvocationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flow_invocations_failed_total",
			Help: "Total number of AI flow invocations that failed",
		},
		[]string{"operation", "error_code"},
	)

	FlowInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "flow_invocation_duration_seconds",
			Help: "Duration of AI flow invocations in seconds",
		},
		[]string{"operation"},
	)

	OnboardingCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_completed_total",
			Help: "Total number of onboarding runs by client type and outcome",
		},
		[]string{"client_type", "outcome"},
	)

	CRMNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_notifications_total",
			Help: "Total number of CRM workflow enrollments attempted",
		},
		[]string{"workflow", "status"},
	)

	CertifiedLettersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certified_letters_submitted_total",
			Help: "Total number of certified letter submissions",
		},
		[]string{"status"},
	)

	PaymentWebhooks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_webhooks_total",
			Help: "Total number of payment webhook deliveries by outcome",
		},
		[]string{"event", "outcome"},
	)
)
