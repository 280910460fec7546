// Package metrics defines and registers all custom Prometheus metrics for the
// tracker API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracker"

// ── Workflow metrics ──────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "medium", or "high"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TicketsCreatedTotal counts resolution tickets submitted by assignees.
var TicketsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of resolution tickets submitted.",
	},
)

// TicketsDecidedTotal counts ticket decisions.
// Label:
//   - decision: "verified" or "rejected"
var TicketsDecidedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_decided_total",
		Help:      "Total number of ticket decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── Access control metrics ────────────────────────────────────────────────────

// PolicyDenialsTotal counts requests rejected by the access policy after
// authentication succeeded.
var PolicyDenialsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of authenticated requests denied by the access policy.",
	},
)

// ── Activity trail metrics ────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of audit records waiting in the
// dispatcher worker channels.
var ActivityQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity records pending in the dispatcher.",
	},
)
