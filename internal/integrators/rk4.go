package integrators

import "github.com/san-kum/gravsim/internal/geom"

// RK4 is the classical fourth-order Runge-Kutta method on (position,
// velocity). Accurate per step but not symplectic: energy error grows
// secularly over long runs.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(pos, vel []geom.Vec2, accel AccelerationFunc, dt float64) ([]geom.Vec2, []geom.Vec2, error) {
	n := len(pos)
	halfDt := 0.5 * dt

	// k1
	k1x := vel
	k1v, err := accel(pos)
	if err != nil {
		return nil, nil, err
	}

	// k2
	scratch := make([]geom.Vec2, n)
	k2x := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		scratch[i] = pos[i].Add(k1x[i].Scale(halfDt))
		k2x[i] = vel[i].Add(k1v[i].Scale(halfDt))
	}
	k2v, err := accel(scratch)
	if err != nil {
		return nil, nil, err
	}

	// k3
	k3x := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		scratch[i] = pos[i].Add(k2x[i].Scale(halfDt))
		k3x[i] = vel[i].Add(k2v[i].Scale(halfDt))
	}
	k3v, err := accel(scratch)
	if err != nil {
		return nil, nil, err
	}

	// k4
	k4x := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		scratch[i] = pos[i].Add(k3x[i].Scale(dt))
		k4x[i] = vel[i].Add(k3v[i].Scale(dt))
	}
	k4v, err := accel(scratch)
	if err != nil {
		return nil, nil, err
	}

	dt6 := dt / 6.0
	nextPos := make([]geom.Vec2, n)
	nextVel := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		dx := k1x[i].Add(k2x[i].Scale(2)).Add(k3x[i].Scale(2)).Add(k4x[i])
		dv := k1v[i].Add(k2v[i].Scale(2)).Add(k3v[i].Scale(2)).Add(k4v[i])
		nextPos[i] = pos[i].Add(dx.Scale(dt6))
		nextVel[i] = vel[i].Add(dv.Scale(dt6))
	}
	return nextPos, nextVel, nil
}
