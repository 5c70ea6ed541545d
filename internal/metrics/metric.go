// Package metrics accumulates run-level figures from per-tick diagnostics.
package metrics

import (
	"sort"

	"github.com/san-kum/gravsim/internal/physics"
)

type Metric interface {
	Name() string
	Observe(d physics.Diagnostics, tot physics.SystemTotals, t float64)
	Value() float64
	Reset()
}

// Defaults returns the metrics reported by the headless runner.
func Defaults() []Metric {
	return []Metric{
		NewEnergyDrift(),
		NewAngularMomentumDrift(),
		NewTotalEnergyDrift(),
		NewMinSeparation(),
	}
}

// Collect returns name -> value for every metric.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Names returns the sorted keys of a collected map.
func Names(values map[string]float64) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
