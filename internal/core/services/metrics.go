package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for bulk action metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomePrecondition = "precondition"
	OutcomeNoChange     = "no_change"
	OutcomeConflict     = "conflict"
	OutcomeError        = "error"
)

// BulkActionMetrics holds the Prometheus collectors of the bulk action engine.
// A nil *BulkActionMetrics is valid and records nothing.
type BulkActionMetrics struct {
	actions              *prometheus.CounterVec
	batchSize            *prometheus.HistogramVec
	timelineEntries      *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
}

// NewBulkActionMetrics creates and registers the collectors on reg.
func NewBulkActionMetrics(reg prometheus.Registerer) *BulkActionMetrics {
	m := &BulkActionMetrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gift_workflow",
			Name:      "bulk_actions_total",
			Help:      "Bulk workflow actions by action and outcome.",
		}, []string{"action", "outcome"}),
		batchSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gift_workflow",
			Name:      "bulk_action_batch_size",
			Help:      "Number of gift ids requested per bulk action.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"action"}),
		timelineEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gift_workflow",
			Name:      "timeline_entries_total",
			Help:      "Timeline entries written by committed bulk actions.",
		}, []string{"action"}),
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gift_workflow",
			Name:      "notification_failures_total",
			Help:      "Post-commit notifications that could not be delivered.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.actions, m.batchSize, m.timelineEntries, m.notificationFailures)
	return m
}

func (m *BulkActionMetrics) observeRequest(action string, size int) {
	if m == nil {
		return
	}
	m.batchSize.WithLabelValues(action).Observe(float64(size))
}

func (m *BulkActionMetrics) observeOutcome(action, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, outcome).Inc()
}

func (m *BulkActionMetrics) observeTimeline(action string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.timelineEntries.WithLabelValues(action).Add(float64(n))
}

func (m *BulkActionMetrics) observeNotificationFailure(kind string) {
	if m == nil {
		return
	}
	m.notificationFailures.WithLabelValues(kind).Inc()
}
