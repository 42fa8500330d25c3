// Package metrics exposes Prometheus instrumentation for reconciliation and
// configuration changes.
package metrics

import (
	"errors"
	"net/http"

	"netviz/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeApplied  = "applied"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

var (
	reconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netviz_reconciliations_total",
		Help: "Snapshots reconciled against the live store, by outcome",
	}, []string{"outcome"})

	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netviz_applied_operations_total",
		Help: "Element operations applied to the live store",
	}, []string{"kind", "op"})

	reconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "netviz_reconcile_duration_seconds",
		Help:    "Duration of a single reconciliation",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	coalescedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "netviz_pump_coalesced_snapshots_total",
		Help: "Pending snapshots replaced by a newer one before being reconciled",
	})

	configChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "netviz_config_changes_total",
		Help: "Render configuration changes, by outcome",
	}, []string{"outcome"})
)

// ObserveReconcile records the result of one reconciliation.
func ObserveReconcile(ops reconcile.AppliedOps, seconds float64, err error) {
	reconcileDuration.Observe(seconds)
	switch {
	case errors.Is(err, reconcile.ErrInvalidModel):
		reconciliationsTotal.WithLabelValues(OutcomeRejected).Inc()
		return
	case err != nil:
		reconciliationsTotal.WithLabelValues(OutcomeFailed).Inc()
		return
	case ops.Empty():
		reconciliationsTotal.WithLabelValues(OutcomeNoop).Inc()
		return
	}
	reconciliationsTotal.WithLabelValues(OutcomeApplied).Inc()
	add := func(kind, op string, n int) {
		if n > 0 {
			operationsTotal.WithLabelValues(kind, op).Add(float64(n))
		}
	}
	add("node", "remove", ops.NodesRemoved)
	add("node", "add", ops.NodesAdded)
	add("node", "update", ops.NodesChanged)
	add("edge", "remove", ops.EdgesRemoved)
	add("edge", "add", ops.EdgesAdded)
	add("edge", "update", ops.EdgesChanged)
}

// ObserveCoalesced counts a pending snapshot dropped in favour of a newer one.
func ObserveCoalesced() {
	coalescedTotal.Inc()
}

// ObserveConfigChange records a configuration change outcome.
func ObserveConfigChange(outcome string) {
	configChangesTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
