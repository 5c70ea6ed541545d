package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/physics"
)

// MinSeparation records the closest approach of the primary pair.
type MinSeparation struct {
	min float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{min: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return "min_separation" }

func (m *MinSeparation) Observe(d physics.Diagnostics, _ physics.SystemTotals, _ float64) {
	m.min = math.Min(m.min, d.Separation)
}

// Value is +Inf until the first observation.
func (m *MinSeparation) Value() float64 { return m.min }

func (m *MinSeparation) Reset() { m.min = math.Inf(1) }
