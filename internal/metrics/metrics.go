// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var KudosSubmitted = promauto.NewCounter(prometheus.CounterOpts{
	Name: "kudos_submitted_total",
	Help: "Number of kudos accepted into the ledger",
})

var KudosRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "kudos_rejected_total",
	Help: "Number of kudos submissions rejected, by reason",
}, []string{"reason"})

var ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "kudos_moderation_actions_total",
	Help: "Number of moderation actions applied, by action",
}, []string{"action"})

var DirectoryLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "kudos_directory_lookups_total",
	Help: "Directory lookups by cache result (hit, miss)",
}, []string{"result"})
