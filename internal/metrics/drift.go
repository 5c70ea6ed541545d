package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/physics"
)

// Drift tracks the maximum relative deviation of a quantity from its first
// observed value.
type Drift struct {
	name     string
	extract  func(physics.Diagnostics, physics.SystemTotals) float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *Drift {
	return &Drift{
		name: "energy_drift",
		extract: func(d physics.Diagnostics, _ physics.SystemTotals) float64 {
			return d.SpecificEnergy
		},
	}
}

func NewAngularMomentumDrift() *Drift {
	return &Drift{
		name: "angular_momentum_drift",
		extract: func(d physics.Diagnostics, _ physics.SystemTotals) float64 {
			return d.SpecificAngularMomentum
		},
	}
}

// NewTotalEnergyDrift follows the whole-system energy, which stays
// conserved when more than two bodies interact.
func NewTotalEnergyDrift() *Drift {
	return &Drift{
		name: "total_energy_drift",
		extract: func(_ physics.Diagnostics, tot physics.SystemTotals) float64 {
			return tot.Energy
		},
	}
}

func (e *Drift) Name() string { return e.name }

func (e *Drift) Observe(d physics.Diagnostics, tot physics.SystemTotals, t float64) {
	v := e.extract(d, tot)

	if e.samples == 0 {
		e.initial = v
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(v-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *Drift) Value() float64 {
	return e.maxDrift
}

func (e *Drift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
