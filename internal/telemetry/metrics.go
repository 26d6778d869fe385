// Package telemetry centralizes the prometheus metrics and otel tracing
// this module reports through. The core pkg/eqsat algorithms never
// depend on telemetry succeeding or even being configured — every
// exported function here is safe to call with no prometheus registry and
// no otel SDK wired up; metrics simply accumulate unread and tracing
// falls back to the no-op tracer, matching the ambient-but-optional
// posture described in SPEC_FULL.md.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the prometheus collectors this module reports
// through. A single process-wide instance is created lazily by
// Default() so that pkg/eqsat callers never need to thread a Metrics
// value through every function signature.
type Metrics struct {
	MatchesFound   *prometheus.CounterVec
	Applications   *prometheus.CounterVec
	SizeLimitStops *prometheus.CounterVec
	EGraphSize     prometheus.Gauge
}

var (
	once     sync.Once
	instance *Metrics
)

// Default returns the process-wide Metrics instance, registering its
// collectors with prometheus's default registry on first use.
func Default() *Metrics {
	once.Do(func() {
		instance = newMetrics()
	})
	return instance
}

func newMetrics() *Metrics {
	m := &Metrics{
		MatchesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eqsat",
			Name:      "matches_found_total",
			Help:      "Number of per-e-class pattern matches found, by rewrite name.",
		}, []string{"rewrite"}),
		Applications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eqsat",
			Name:      "applications_total",
			Help:      "Number of rewrite applications that added something new, by rewrite name.",
		}, []string{"rewrite"}),
		SizeLimitStops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eqsat",
			Name:      "size_limit_stops_total",
			Help:      "Number of times ApplyWithLimit stopped early due to the size ceiling, by rewrite name.",
		}, []string{"rewrite"}),
		EGraphSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eqsat",
			Name:      "egraph_size",
			Help:      "TotalSize() of the e-graph sampled at the start of the most recent ApplyWithLimit call.",
		}),
	}

	// Registration failures (e.g. a second Metrics registered against
	// the same registry in tests) are non-fatal: the collector still
	// works standalone, it just won't be scraped. This mirrors the
	// "ambient, never load-bearing" posture the rest of this package
	// follows for telemetry.
	_ = prometheus.Register(m.Applications)
	_ = prometheus.Register(m.SizeLimitStops)
	_ = prometheus.Register(m.EGraphSize)
	_ = prometheus.Register(m.MatchesFound)

	return m
}

// RecordSearch increments the matches-found counter for rewrite by the
// number of bindings found across all matched e-classes.
func (m *Metrics) RecordSearch(rewrite string, totalBindings int) {
	if m == nil || totalBindings == 0 {
		return
	}
	m.MatchesFound.WithLabelValues(rewrite).Add(float64(totalBindings))
}

// RecordApplication increments the applications counter for rewrite.
func (m *Metrics) RecordApplication(rewrite string) {
	if m == nil {
		return
	}
	m.Applications.WithLabelValues(rewrite).Inc()
}

// RecordSizeLimitStop increments the size-limit-stop counter for
// rewrite.
func (m *Metrics) RecordSizeLimitStop(rewrite string) {
	if m == nil {
		return
	}
	m.SizeLimitStops.WithLabelValues(rewrite).Inc()
}

// SampleEGraphSize sets the egraph-size gauge to size.
func (m *Metrics) SampleEGraphSize(size uint64) {
	if m == nil {
		return
	}
	m.EGraphSize.Set(float64(size))
}
