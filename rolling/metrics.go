package rolling

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry publishes rolling accumulator values to Prometheus for
// operational visibility. It is modeled on the churn package's
// enable-by-construction, no-op-when-nil pattern
// (etalazz-vsa/internal/ratelimiter/telemetry/churn): a nil *Registry is
// always safe to call methods on and costs nothing on the hot path.
//
// Values reported here are, like LockFreeMean, for monitoring only — never
// for routing or admission decisions.
type Registry struct {
	mu    sync.Mutex
	gauge *prometheus.GaugeVec
	count *prometheus.GaugeVec
}

// NewRegistry creates a Registry and registers its gauges against reg.
// namespace/subsystem follow the Prometheus naming convention used by
// prom_counters.go's vsa_* metrics (e.g. "streamwindow"/"rolling").
func NewRegistry(reg prometheus.Registerer, namespace, subsystem string) *Registry {
	r := &Registry{
		gauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "mean",
			Help:      "Current value of a named rolling mean accumulator (monitoring only, not atomic with count).",
		}, []string{"name"}),
		count: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "count",
			Help:      "Current sample count of a named rolling accumulator.",
		}, []string{"name"}),
	}
	reg.MustRegister(r.gauge, r.count)
	return r
}

// Observe publishes the current (mean, count) pair for the named
// accumulator. Safe to call on a nil *Registry.
func (r *Registry) Observe(name string, mean float64, count uint32) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauge.WithLabelValues(name).Set(mean)
	r.count.WithLabelValues(name).Set(float64(count))
}

// ObserveMean is a convenience wrapper around Observe for a Mean value.
func (r *Registry) ObserveMean(name string, m Mean) {
	r.Observe(name, m.Value, m.Count)
}

// ObserveLockFreeMean is a convenience wrapper around Observe for a
// LockFreeMean, taking its non-atomic (mean, count) snapshot.
func (r *Registry) ObserveLockFreeMean(name string, m *LockFreeMean) {
	r.Observe(name, m.Mean(), m.Count())
}
