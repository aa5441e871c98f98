package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filingdesk_reminders_sent_total",
			Help: "Total number of reminder notifications created",
		},
		[]string{"category"},
	)

	RemindersSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filingdesk_reminders_suppressed_total",
			Help: "Total number of reminders skipped because one was already sent in the window",
		},
		[]string{"category"},
	)

	ReminderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filingdesk_reminder_failures_total",
			Help: "Total number of reminders that failed for a single client",
		},
		[]string{"category"},
	)

	SweepPhaseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filingdesk_sweep_phase_failures_total",
			Help: "Total number of sweep phases that returned an error",
		},
		[]string{"phase"},
	)

	SweepPhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "filingdesk_sweep_phase_duration_seconds",
			Help: "Duration of each sweep phase in seconds",
		},
		[]string{"phase"},
	)

	ApplicationsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filingdesk_applications_abandoned_total",
			Help: "Total number of draft applications marked abandoned",
		},
	)

	DeadlinesRepopulated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filingdesk_deadlines_repopulated_total",
			Help: "Total number of applications whose deadlines were filled in by the hourly job",
		},
	)

	ExpiredRenewals = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filingdesk_expired_renewals",
			Help: "Number of clients with a lapsed registered agent renewal at the last check",
		},
	)
)
