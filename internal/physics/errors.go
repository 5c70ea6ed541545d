package physics

import (
	"errors"
	"fmt"
)

var (
	// ErrCollision indicates two bodies closer than the minimum separation.
	ErrCollision = errors.New("physics: bodies closer than minimum separation")

	// ErrInvalidMass indicates a mass that is not strictly positive.
	ErrInvalidMass = errors.New("physics: mass must be positive")

	// ErrNonFinite indicates a step produced NaN or Inf.
	ErrNonFinite = errors.New("physics: state diverged (NaN or Inf detected)")

	ErrUnknownBody   = errors.New("physics: unknown body")
	ErrDuplicateBody = errors.New("physics: duplicate body id")
	ErrTooFewBodies  = errors.New("physics: at least two bodies required")

	// ErrInvalidConfig indicates a non-positive G or negative separation.
	ErrInvalidConfig = errors.New("physics: invalid simulator config")
)

// CollisionError names the pair that violated the separation guard.
type CollisionError struct {
	A, B       string
	Separation float64
	Min        float64
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("physics: %s and %s separated by %.3g (minimum %.3g)", e.A, e.B, e.Separation, e.Min)
}

func (e *CollisionError) Unwrap() error {
	return ErrCollision
}
