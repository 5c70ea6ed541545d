package physics

import (
	"math"

	"github.com/san-kum/gravsim/internal/geom"
)

// accelerations sums a_i = G * m_j * r_ij / |r_ij|^3 over all pairs.
func (s *Simulator) accelerations(pos []geom.Vec2) ([]geom.Vec2, error) {
	n := len(pos)
	acc := make([]geom.Vec2, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pos[j].Sub(pos[i])
			dist := r.Norm()
			if dist < s.cfg.MinSeparation || dist == 0 {
				return nil, &CollisionError{
					A:          s.bodies[i].ID,
					B:          s.bodies[j].ID,
					Separation: dist,
					Min:        s.cfg.MinSeparation,
				}
			}

			dir, err := r.Normalized()
			if err != nil {
				return nil, err
			}
			// F = G m_i m_j / r^2 along dir, split by each body's mass
			f := s.cfg.G / (dist * dist)
			acc[i] = acc[i].Add(dir.Scale(f * s.bodies[j].Mass))
			acc[j] = acc[j].Sub(dir.Scale(f * s.bodies[i].Mass))
		}
	}

	return acc, nil
}

// SystemTotals holds conserved quantities of the whole system.
type SystemTotals struct {
	Kinetic         float64
	Potential       float64
	Energy          float64
	Momentum        geom.Vec2
	AngularMomentum float64
}

// Totals computes total energy, linear momentum and angular momentum about
// the origin.
func (s *Simulator) Totals() SystemTotals {
	var t SystemTotals
	n := len(s.bodies)

	for i := 0; i < n; i++ {
		bi := s.bodies[i]
		t.Kinetic += 0.5 * bi.Mass * bi.Velocity.NormSquared()
		t.Momentum = t.Momentum.Add(bi.Velocity.Scale(bi.Mass))
		t.AngularMomentum += bi.Mass * bi.Position.Cross(bi.Velocity)

		for j := i + 1; j < n; j++ {
			bj := s.bodies[j]
			r := bj.Position.Sub(bi.Position).Norm()
			if r > 0 {
				t.Potential -= s.cfg.G * bi.Mass * bj.Mass / r
			} else {
				t.Potential = math.Inf(-1)
			}
		}
	}

	t.Energy = t.Kinetic + t.Potential
	return t
}
