package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/ezsim/internal/metrics"
	"github.com/san-kum/ezsim/internal/sim"
)

type Registry struct {
	metrics  map[string]func() sim.Metric
	profiles map[string]sim.ParameterRanges
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics:  make(map[string]func() sim.Metric),
		profiles: make(map[string]sim.ParameterRanges),
	}

	for _, p := range []metrics.Param{metrics.Drift, metrics.Boundary, metrics.Nondecision} {
		r.metrics["rmse_"+string(p)] = func() sim.Metric { return metrics.NewRMSE(p) }
		r.metrics["mean_abs_bias_"+string(p)] = func() sim.Metric { return metrics.NewMeanAbsBias(p) }
	}
	r.metrics["exclusion_rate"] = func() sim.Metric { return metrics.NewExclusionRate() }
	r.metrics["retry_rate"] = func() sim.Metric { return metrics.NewRetryRate() }

	r.profiles["default"] = sim.DefaultRanges()
	r.profiles["narrow"] = sim.ParameterRanges{
		V: sim.Range{Min: 1, Max: 1.5},
		A: sim.Range{Min: 1, Max: 1.5},
		T: sim.Range{Min: 0.2, Max: 0.4},
	}
	r.profiles["wide"] = sim.ParameterRanges{
		V: sim.Range{Min: -2, Max: 2},
		A: sim.Range{Min: 0.3, Max: 3},
		T: sim.Range{Min: 0, Max: 0.8},
	}

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetProfile(name string) (sim.ParameterRanges, error) {
	rng, ok := r.profiles[name]
	if !ok {
		return sim.ParameterRanges{}, fmt.Errorf("unknown profile: %s", name)
	}
	return rng, nil
}

func (r *Registry) ListMetrics() []string {
	return sortedKeys(r.metrics)
}

func (r *Registry) ListProfiles() []string {
	return sortedKeys(r.profiles)
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewRMSE(metrics.Drift),
		metrics.NewRMSE(metrics.Boundary),
		metrics.NewRMSE(metrics.Nondecision),
		metrics.NewExclusionRate(),
		metrics.NewRetryRate(),
	}
}

// Metrics resolves names, falling back to DefaultMetrics when none are given.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		return r.DefaultMetrics(), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
