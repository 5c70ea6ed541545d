package integrators

import "github.com/san-kum/gravsim/internal/geom"

// SymplecticEuler updates velocity first and then moves with the new
// velocity. First order; energy error is roughly dt/2 relative.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (e *SymplecticEuler) Name() string { return "euler" }

func (e *SymplecticEuler) Step(pos, vel []geom.Vec2, accel AccelerationFunc, dt float64) ([]geom.Vec2, []geom.Vec2, error) {
	a, err := accel(pos)
	if err != nil {
		return nil, nil, err
	}

	nextPos := make([]geom.Vec2, len(pos))
	nextVel := make([]geom.Vec2, len(vel))
	for i := range pos {
		nextVel[i] = vel[i].Add(a[i].Scale(dt))
		nextPos[i] = pos[i].Add(nextVel[i].Scale(dt))
	}
	return nextPos, nextVel, nil
}
