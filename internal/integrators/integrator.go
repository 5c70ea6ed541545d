// Package integrators advances point-mass positions and velocities under a
// position-dependent acceleration field.
//
//   - [Verlet]: velocity-Verlet, second order and symplectic (default)
//   - [SymplecticEuler]: first-order kick-drift, kept for comparison runs
//   - [RK4]: classical Runge-Kutta, accurate per step but drifts in energy
//
// Integrators never mutate their inputs; a failed step leaves the caller's
// state untouched.
package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/geom"
)

// AccelerationFunc returns the acceleration of every body given their
// positions. It may refuse a configuration (e.g. coincident bodies).
type AccelerationFunc func(pos []geom.Vec2) ([]geom.Vec2, error)

type Integrator interface {
	Name() string
	Step(pos, vel []geom.Vec2, accel AccelerationFunc, dt float64) ([]geom.Vec2, []geom.Vec2, error)
}

const Default = "verlet"

var registry = map[string]func() Integrator{
	"verlet": func() Integrator { return NewVerlet() },
	"euler":  func() Integrator { return NewSymplecticEuler() },
	"rk4":    func() Integrator { return NewRK4() },
}

// New returns the integrator registered under name.
func New(name string) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
