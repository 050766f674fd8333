package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// IntakeMetrics records counters for the order intake pipeline.
type IntakeMetrics struct {
	ordersSubmitted      *prometheus.CounterVec
	filesRejected        *prometheus.CounterVec
	notificationFailures prometheus.Counter
}

// NewIntakeMetrics registers the intake metrics on the provided registerer.
func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	if reg == nil {
		return &IntakeMetrics{}
	}
	ordersSubmitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders accepted by the intake pipeline.",
	}, []string{"delivery_type"})
	filesRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "files_rejected_total",
		Help: "Uploaded design files rejected during validation.",
	}, []string{"reason"})
	notificationFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_failures_total",
		Help: "Order notifications that could not be delivered.",
	})
	reg.MustRegister(ordersSubmitted, filesRejected, notificationFailures)
	return &IntakeMetrics{
		ordersSubmitted:      ordersSubmitted,
		filesRejected:        filesRejected,
		notificationFailures: notificationFailures,
	}
}

// IncOrderSubmitted increments the submission counter for a delivery type.
func (m *IntakeMetrics) IncOrderSubmitted(deliveryType string) {
	if m == nil || m.ordersSubmitted == nil {
		return
	}
	m.ordersSubmitted.WithLabelValues(normalizeLabel(deliveryType)).Inc()
}

// IncFileRejected increments the rejection counter for the given reason.
func (m *IntakeMetrics) IncFileRejected(reason string) {
	if m == nil || m.filesRejected == nil {
		return
	}
	m.filesRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncNotificationFailure increments the failed notification counter.
func (m *IntakeMetrics) IncNotificationFailure() {
	if m == nil || m.notificationFailures == nil {
		return
	}
	m.notificationFailures.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
