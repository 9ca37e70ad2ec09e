// Package metrics exposes optional Prometheus instrumentation for a
// saturation run: how many value numbers were allocated, how many e-class
// merges were performed, and how many rule matches fired. None of this
// feeds back into EquivalentTo or AllNodes — it is an observability hook,
// present and wired but never load-bearing for correctness.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder holds the counters for one e-graph instance. A nil *Recorder is
// valid and disables instrumentation entirely — every method is safe to
// call on a nil receiver, so callers (including eqsat.EGraph)
// never need to branch on whether metrics are enabled.
type Recorder struct {
	vnsAllocated prometheus.Counter
	merges       prometheus.Counter
	ruleMatches  prometheus.Counter
}

// NewRecorder builds a Recorder with three counters: eqsat_vns_allocated_total,
// eqsat_merges_total, and eqsat_rule_matches_total. If reg is non-nil the
// counters are registered against it; pass prometheus.NewRegistry() for an
// isolated registry (as cmd/egraphctl's serve command does) or nil to build
// the counters without registering them anywhere.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		vnsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eqsat_vns_allocated_total",
			Help: "Total value numbers allocated by the numberer.",
		}),
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eqsat_merges_total",
			Help: "Total e-class merges performed during saturation.",
		}),
		ruleMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eqsat_rule_matches_total",
			Help: "Total successful rule LHS matches during saturation.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.vnsAllocated, r.merges, r.ruleMatches)
	}
	return r
}

// ObserveVN records one value-number allocation.
func (r *Recorder) ObserveVN() {
	if r == nil {
		return
	}
	r.vnsAllocated.Inc()
}

// ObserveMerge records one e-class merge.
func (r *Recorder) ObserveMerge() {
	if r == nil {
		return
	}
	r.merges.Inc()
}

// ObserveRuleMatch records one successful rule match.
func (r *Recorder) ObserveRuleMatch() {
	if r == nil {
		return
	}
	r.ruleMatches.Inc()
}
