// Package metrics holds the service's Prometheus instruments. Counters are
// package-level and registered via promauto; handlers increment them directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_accepted_total",
			Help: "Total number of waitlist applications accepted",
		},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_rejected_total",
			Help: "Total number of waitlist submissions rejected",
		},
		[]string{"reason"}, // validation, duplicate_email, internal
	)

	StatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_status_updates_total",
			Help: "Total number of application status updates",
		},
		[]string{"status"},
	)

	ExportsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waitlist_exports_total",
			Help: "Total number of CSV exports generated",
		},
	)
)
