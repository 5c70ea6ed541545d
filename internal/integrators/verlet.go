package integrators

import "github.com/san-kum/gravsim/internal/geom"

type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

// Step performs kick(dt/2), drift(dt), kick(dt/2). The closing kick uses the
// acceleration at the new positions, so the net velocity change is
// (a_old + a_new) * dt / 2.
func (v *Verlet) Step(pos, vel []geom.Vec2, accel AccelerationFunc, dt float64) ([]geom.Vec2, []geom.Vec2, error) {
	n := len(pos)
	halfDt := 0.5 * dt

	a0, err := accel(pos)
	if err != nil {
		return nil, nil, err
	}

	nextPos := make([]geom.Vec2, n)
	nextVel := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		nextVel[i] = vel[i].Add(a0[i].Scale(halfDt))
		nextPos[i] = pos[i].Add(nextVel[i].Scale(dt))
	}

	a1, err := accel(nextPos)
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < n; i++ {
		nextVel[i] = nextVel[i].Add(a1[i].Scale(halfDt))
	}

	return nextPos, nextVel, nil
}
