package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/physics"
)

var ErrInvalidParams = errors.New("analysis: invalid parameters")

// LyapunovExponent estimates the largest Lyapunov exponent of a roster by
// trajectory separation. A twin run starts with the first body moved by
// perturbation along x; after every step the phase-space distance between
// the runs is measured and the twin is pulled back to distance perturbation
// along the same direction. The exponent is the mean log growth per unit
// time. A collision in either run ends the estimate with that error.
func LyapunovExponent(cfg physics.Config, bodies []physics.Body, dt, duration, perturbation float64) (float64, error) {
	if !(dt > 0) || !(perturbation > 0) || !(duration >= dt) {
		return 0, fmt.Errorf("%w: dt=%v duration=%v perturbation=%v", ErrInvalidParams, dt, duration, perturbation)
	}

	ref, err := physics.NewSimulator(cfg, bodies)
	if err != nil {
		return 0, err
	}

	shifted := make([]physics.Body, len(bodies))
	copy(shifted, bodies)
	shifted[0].Position.X += perturbation
	twin, err := physics.NewSimulator(cfg, shifted)
	if err != nil {
		return 0, err
	}

	steps := int(math.Round(duration / dt))
	sumLog := 0.0
	for k := 0; k < steps; k++ {
		a, err := ref.Step(dt)
		if err != nil {
			return 0, err
		}
		b, err := twin.Step(dt)
		if err != nil {
			return 0, err
		}

		sep := separation(a, b)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / perturbation)

		scale := perturbation / sep
		for i := range b {
			pos := a[i].Position.Add(b[i].Position.Sub(a[i].Position).Scale(scale))
			vel := a[i].Velocity.Add(b[i].Velocity.Sub(a[i].Velocity).Scale(scale))
			if err := twin.SetState(b[i].ID, pos, vel); err != nil {
				return 0, err
			}
		}
	}

	return sumLog / (float64(steps) * dt), nil
}

// separation is the euclidean distance between two rosters in phase space.
func separation(a, b []physics.Body) float64 {
	sq := 0.0
	for i := range a {
		sq += b[i].Position.Sub(a[i].Position).NormSquared()
		sq += b[i].Velocity.Sub(a[i].Velocity).NormSquared()
	}
	return math.Sqrt(sq)
}

// Divergence returns the position distance between the same body in two
// rosters, for every body in a.
func Divergence(a, b []physics.Body) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = b[i].Position.Sub(a[i].Position).Norm()
	}
	return out
}
