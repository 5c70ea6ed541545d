// Package physics simulates point masses under Newtonian gravity.
//
// A [Simulator] owns an ordered set of [Body] values and advances them with
// an [integrators.Integrator] (velocity-Verlet by default). Accelerations are
// summed pairwise, so any number of bodies is supported; the orbital
// diagnostics ([Simulator.Diagnostics]) describe the primary pair, bodies 0
// and 1.
//
// # Close encounters
//
// There is no softening. If two bodies come closer than
// [Config.MinSeparation] the step is refused with a [*CollisionError] and
// the state is left exactly as it was before the call.
//
//	sim, _ := physics.NewSimulator(physics.DefaultConfig(), bodies)
//	if _, err := sim.Step(0.01); errors.Is(err, physics.ErrCollision) {
//	    // halt or rewind
//	}
package physics
