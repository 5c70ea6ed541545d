package physics

import (
	"fmt"

	"github.com/san-kum/gravsim/internal/geom"
)

type Body struct {
	ID       string
	Mass     float64
	Position geom.Vec2
	Velocity geom.Vec2
}

// Validate checks the construction invariants of a single body.
func (b Body) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownBody)
	}
	if !(b.Mass > 0) {
		return fmt.Errorf("%w: %s has mass %v", ErrInvalidMass, b.ID, b.Mass)
	}
	if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
		return fmt.Errorf("%w: %s has non-finite initial state", ErrNonFinite, b.ID)
	}
	return nil
}

// ValidateRoster checks every body and the uniqueness of ids.
func ValidateRoster(bodies []Body) error {
	if len(bodies) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewBodies, len(bodies))
	}
	seen := make(map[string]struct{}, len(bodies))
	for _, b := range bodies {
		if err := b.Validate(); err != nil {
			return err
		}
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateBody, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// CheckSeparation reports the first pair closer than min.
func CheckSeparation(bodies []Body, min float64) error {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := bodies[j].Position.Sub(bodies[i].Position).Norm()
			if d == 0 || d < min {
				return &CollisionError{A: bodies[i].ID, B: bodies[j].ID, Separation: d, Min: min}
			}
		}
	}
	return nil
}

func cloneBodies(bodies []Body) []Body {
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}
