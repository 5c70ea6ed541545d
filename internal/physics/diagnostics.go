package physics

// Diagnostics describes the relative orbit of the primary pair.
type Diagnostics struct {
	// SpecificEnergy is 0.5*|v_rel|^2 - mu/|r_rel| with mu = G*(m1+m2).
	SpecificEnergy float64
	// SpecificAngularMomentum is r_rel x v_rel.
	SpecificAngularMomentum float64
	Separation              float64
	RelativeSpeed           float64
}

// Bound reports whether the pair is on a closed (elliptical) orbit.
func (d Diagnostics) Bound() bool {
	return d.SpecificEnergy < 0
}

// Diagnostics computes the orbital diagnostics of bodies 0 and 1 from the
// current state. It does not mutate the simulator.
func (s *Simulator) Diagnostics() (Diagnostics, error) {
	b1, b2 := s.bodies[0], s.bodies[1]
	r := b2.Position.Sub(b1.Position)
	v := b2.Velocity.Sub(b1.Velocity)

	dist := r.Norm()
	if dist == 0 || dist < s.cfg.MinSeparation {
		return Diagnostics{}, &CollisionError{A: b1.ID, B: b2.ID, Separation: dist, Min: s.cfg.MinSeparation}
	}

	mu := s.cfg.G * (b1.Mass + b2.Mass)
	speed := v.Norm()
	return Diagnostics{
		SpecificEnergy:          0.5*speed*speed - mu/dist,
		SpecificAngularMomentum: r.Cross(v),
		Separation:              dist,
		RelativeSpeed:           speed,
	}, nil
}
